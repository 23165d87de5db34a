package session

import (
	"net/http"
	"net/url"
	"time"
)

// DefaultAccessCookieName is the cookie that mirrors the access token so
// server-rendered pages can authenticate without the Authorization header.
const DefaultAccessCookieName = "access"

// CookieMirror keeps the access cookie in step with the stored access token.
type CookieMirror interface {
	SetAccessCookie(token string)
	ExpireAccessCookie()
}

// JarMirror writes the access cookie into an http.CookieJar for the API origin,
// so any http.Client sharing the jar sends it along.
type JarMirror struct {
	jar  http.CookieJar
	u    *url.URL
	name string
}

var _ CookieMirror = (*JarMirror)(nil)

// NewJarMirror mirrors into jar for the origin of baseURL. An empty name uses
// DefaultAccessCookieName.
func NewJarMirror(jar http.CookieJar, baseURL *url.URL, name string) *JarMirror {
	if name == "" {
		name = DefaultAccessCookieName
	}
	return &JarMirror{
		jar:  jar,
		u:    &url.URL{Scheme: baseURL.Scheme, Host: baseURL.Host, Path: "/"},
		name: name,
	}
}

func (m *JarMirror) SetAccessCookie(token string) {
	m.jar.SetCookies(m.u, []*http.Cookie{{
		Name:  m.name,
		Value: token,
		Path:  "/",
	}})
}

// ExpireAccessCookie overwrites the cookie with an empty value dated in the past.
func (m *JarMirror) ExpireAccessCookie() {
	m.jar.SetCookies(m.u, []*http.Cookie{{
		Name:    m.name,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0).UTC(),
		MaxAge:  -1,
	}})
}

// AccessCookie returns the current cookie value, if the jar still holds one.
func (m *JarMirror) AccessCookie() (string, bool) {
	for _, c := range m.jar.Cookies(m.u) {
		if c.Name == m.name {
			return c.Value, true
		}
	}
	return "", false
}

type noCookies struct{}

func (noCookies) SetAccessCookie(string) {}
func (noCookies) ExpireAccessCookie()    {}
