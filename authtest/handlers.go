package authtest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-auth-session/apimodel"
	"github.com/jrsteele09/go-auth-session/session"
)

type claimsContextKey struct{}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req apimodel.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[req.Username]
	if !ok || u.Password != req.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, apimodel.LoginResponse{
		User: u.Username,
		Role: u.Role,
		Tokens: apimodel.TokenPair{
			Access:  s.mintAccessToken(u.Username),
			Refresh: s.mintRefreshToken(u.Username),
		},
	})
}

func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	var req apimodel.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshStatus != 0 {
		writeJSON(w, s.refreshStatus, apimodel.ErrorResponse{Detail: "refresh unavailable"})
		return
	}

	username, ok := s.refreshTokens[req.Refresh]
	if _, revoked := s.blacklisted[req.Refresh]; !ok || revoked {
		writeJSON(w, http.StatusUnauthorized, apimodel.ErrorResponse{Detail: "Token is invalid or expired"})
		return
	}

	writeJSON(w, http.StatusOK, apimodel.RefreshResponse{Access: s.mintAccessToken(username)})
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	var req apimodel.RefreshRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.refreshTokens[req.Refresh]; !ok {
		writeError(w, http.StatusBadRequest, "invalid token")
		return
	}
	s.blacklisted[req.Refresh] = struct{}{}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "logout"})
}

// requireAccessToken validates a Bearer access token the way the API's JWT
// authentication does: signature, expiry, then the revocation list.
func (s *Server) requireAccessToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		forced := s.protectedStatus
		s.mu.Unlock()
		if forced != 0 {
			writeJSON(w, forced, apimodel.ErrorResponse{Detail: "forced"})
			return
		}

		parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			writeJSON(w, http.StatusUnauthorized, apimodel.ErrorResponse{Detail: "Authentication credentials were not provided."})
			return
		}

		claims := &session.Claims{}
		_, err := jwt.ParseWithClaims(parts[1], claims, func(*jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.nowFunc))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, apimodel.ErrorResponse{Detail: "Given token not valid for any token type"})
			return
		}

		s.mu.Lock()
		_, revoked := s.revokedAccess[claims.ID]
		s.mu.Unlock()
		if revoked {
			writeJSON(w, http.StatusUnauthorized, apimodel.ErrorResponse{Detail: "Given token not valid for any token type"})
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsContextKey{}, claims)))
	})
}

// IncidentsResponse is what the protected incidents route returns: who called
// and the body they sent.
type IncidentsResponse struct {
	User string          `json:"user"`
	Role string          `json:"role"`
	Echo json.RawMessage `json:"echo,omitempty"`
}

func (s *Server) incidentsHandler(w http.ResponseWriter, r *http.Request) {
	claims, _ := r.Context().Value(claimsContextKey{}).(*session.Claims)
	body, _ := io.ReadAll(r.Body)

	resp := IncidentsResponse{
		User: claims.Subject,
		Role: claims.Role,
	}
	if len(body) > 0 {
		resp.Echo = body
	}
	writeJSON(w, http.StatusOK, resp)
}
