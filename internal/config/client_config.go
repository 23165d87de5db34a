package config

import (
	"strings"
	"time"
)

type ClientConfig interface {
	GetBaseURL() string
	GetLoginPath() string
	GetRefreshPath() string
	GetLogoutPath() string
	GetEntryPath() string
	GetAccessCookieName() string
	GetRequestTimeout() time.Duration
}

type Client struct {
	BaseURL          string        `env:"BASE_URL, default=http://localhost:8000"`
	LoginPath        string        `env:"LOGIN_PATH, default=/api/login/"`
	RefreshPath      string        `env:"REFRESH_PATH, default=/api/refresh/"`
	LogoutPath       string        `env:"LOGOUT_PATH, default=/api/logout/"`
	EntryPath        string        `env:"ENTRY_PATH, default=/"`
	AccessCookieName string        `env:"ACCESS_COOKIE_NAME, default=access"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT, default=0s"` // 0 = no timeout
}

var _ ClientConfig = Client{}

// GetBaseURL returns the API origin without a trailing slash
// (e.g., "https://incidents.example.com").
func (c Client) GetBaseURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}

func (c Client) GetLoginPath() string {
	return c.LoginPath
}

func (c Client) GetRefreshPath() string {
	return c.RefreshPath
}

func (c Client) GetLogoutPath() string {
	return c.LogoutPath
}

func (c Client) GetEntryPath() string {
	return c.EntryPath
}

func (c Client) GetAccessCookieName() string {
	return c.AccessCookieName
}

func (c Client) GetRequestTimeout() time.Duration {
	return c.RequestTimeout
}
