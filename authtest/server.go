// Package authtest runs an in-process stand-in for the incidents API so client
// code can be tested against real HTTP. It issues HS256 access tokens carrying
// email and role claims, opaque refresh tokens, and keeps a blacklist of
// logged-out refresh tokens.
package authtest

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-session/apimodel"
	"github.com/jrsteele09/go-auth-session/session"
)

// User is an account the fake API accepts at login.
type User struct {
	ID       string
	Username string
	Password string
	Email    string
	Role     string
}

// RecordedRequest is what the server saw for one incoming request.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	RequestID     string
	AccessCookie  string
	Body          []byte
}

type Server struct {
	*httptest.Server

	mu              sync.Mutex
	secret          []byte
	accessTTL       time.Duration
	nowFunc         func() time.Time
	users           map[string]User     // username -> user
	refreshTokens   map[string]string   // refresh token -> username
	blacklisted     map[string]struct{} // logged out refresh tokens
	revokedAccess   map[string]struct{} // access token jti values
	requests        []RecordedRequest
	refreshStatus   int // forced status for /api/refresh/, 0 = normal
	protectedStatus int // forced status for protected routes, 0 = normal
}

type Option func(*Server)

func WithAccessTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.accessTTL = ttl
	}
}

func WithNowFunc(now func() time.Time) Option {
	return func(s *Server) {
		s.nowFunc = now
	}
}

func WithUser(u User) Option {
	return func(s *Server) {
		s.users[u.Username] = u
	}
}

// NewServer starts a fake API that is shut down when the test ends.
func NewServer(t *testing.T, options ...Option) *Server {
	t.Helper()

	s := &Server{
		secret:        []byte(uuid.NewString()),
		accessTTL:     5 * time.Minute,
		nowFunc:       time.Now,
		users:         make(map[string]User),
		refreshTokens: make(map[string]string),
		blacklisted:   make(map[string]struct{}),
		revokedAccess: make(map[string]struct{}),
	}
	for _, opt := range options {
		opt(s)
	}

	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Post(RouteLogin, s.loginHandler)
	r.Post(RouteRefresh, s.refreshHandler)
	r.Post(RouteLogout, s.logoutHandler)
	r.With(s.requireAccessToken).Get(RouteIncidents, s.incidentsHandler)
	r.With(s.requireAccessToken).Post(RouteIncidents, s.incidentsHandler)
	return r
}

// IssueTokens creates a session for username without going through login.
func (s *Server) IssueTokens(username string) session.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()

	return session.Credentials{
		AccessToken:  s.mintAccessToken(username),
		RefreshToken: s.mintRefreshToken(username),
	}
}

// RevokeAccessToken makes protected routes answer 401 for token, as if it had
// expired.
func (s *Server) RevokeAccessToken(token string) {
	claims := &session.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revokedAccess[claims.ID] = struct{}{}
}

// FailRefresh makes the refresh endpoint answer status. 0 restores normal
// behaviour.
func (s *Server) FailRefresh(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshStatus = status
}

// ForceProtectedStatus makes protected routes answer status regardless of the
// token. 0 restores normal behaviour.
func (s *Server) ForceProtectedStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.protectedStatus = status
}

// IsBlacklisted reports whether refresh was invalidated by a logout.
func (s *Server) IsBlacklisted(refresh string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blacklisted[refresh]
	return ok
}

// Requests returns the recorded requests for path, oldest first.
func (s *Server) Requests(path string) []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []RecordedRequest
	for _, r := range s.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Calls counts the requests received for path.
func (s *Server) Calls(path string) int {
	return len(s.Requests(path))
}

// TotalCalls counts every request received.
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		rec := RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Body:          body,
		}
		if c, err := r.Cookie(session.DefaultAccessCookieName); err == nil {
			rec.AccessCookie = c.Value
		}

		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// mintAccessToken must be called with s.mu held.
func (s *Server) mintAccessToken(username string) string {
	u := s.users[username]
	now := s.nowFunc()
	claims := session.Claims{
		Email:  u.Email,
		Role:   u.Role,
		UserID: u.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			ID:        uuid.NewString(),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return raw
}

// mintRefreshToken must be called with s.mu held.
func (s *Server) mintRefreshToken(username string) string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	token := hex.EncodeToString(b)
	s.refreshTokens[token] = username
	return token
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apimodel.ErrorResponse{Error: msg})
}
