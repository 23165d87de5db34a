package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"

	"github.com/jrsteele09/go-auth-session/client"
	"github.com/jrsteele09/go-auth-session/internal/config"
	"github.com/jrsteele09/go-auth-session/session"
	"github.com/jrsteele09/go-auth-session/storage"
	"github.com/jrsteele09/go-auth-session/storage/boltrepo"
	"github.com/jrsteele09/go-auth-session/storage/memory"
	"github.com/jrsteele09/go-auth-session/storage/redisrepo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/publicsuffix"
)

// app is everything one CLI invocation needs.
type app struct {
	config config.Config
	client *client.Client
	repo   storage.Repo
	out    io.Writer
}

func newLogger(cfg config.EnvConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func openRepo(ctx context.Context, cfg config.StorageConfig) (storage.Repo, error) {
	switch cfg.GetStorageBackend() {
	case config.StorageMemory:
		return memory.NewInMemoryRepo(), nil
	case config.StorageBolt:
		return boltrepo.OpenInFolder(cfg.GetDataFolder())
	case config.StorageRedis:
		return redisrepo.Dial(ctx, cfg.GetRedisURL(), cfg.GetRedisNamespace())
	}
	return nil, fmt.Errorf("unsupported storage backend %q", cfg.GetStorageBackend())
}

func newApp(ctx context.Context, cfg config.Config, out io.Writer) (*app, error) {
	logger := newLogger(cfg)
	log.Logger = logger

	repo, err := openRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(cfg.GetBaseURL())
	if err != nil {
		return nil, fmt.Errorf("url.Parse %q: %w", cfg.GetBaseURL(), err)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookiejar.New: %w", err)
	}
	mirror := session.NewJarMirror(jar, baseURL, cfg.GetAccessCookieName())
	sess := session.New(repo, mirror)

	// the jar lives only as long as this process, so mirror what storage holds
	if token, ok, err := sess.AccessToken(ctx); err == nil && ok {
		mirror.SetAccessCookie(token)
	}

	c, err := client.New(cfg.GetBaseURL(), sess,
		client.WithEndpoints(client.EndpointsFromConfig(cfg)),
		client.WithHTTPClient(&http.Client{Jar: jar, Timeout: cfg.GetRequestTimeout()}),
		client.WithNavigator(cliNavigator{out: os.Stderr}),
		client.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		config: cfg,
		client: c,
		repo:   repo,
		out:    out,
	}, nil
}

func (a *app) Close() error {
	if closer, ok := a.repo.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// cliNavigator turns entry-page redirects into instructions for the user.
type cliNavigator struct {
	out io.Writer
}

func (n cliNavigator) Navigate(_ context.Context, path string) {
	fmt.Fprintf(n.out, "not signed in (%s): run `sessionctl login`\n", path)
}

func (n cliNavigator) Replace(_ context.Context, path string) {
	fmt.Fprintf(n.out, "session ended (%s)\n", path)
}
