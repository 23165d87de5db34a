package client

import (
	"context"

	"github.com/rs/zerolog"
)

// Navigator moves the user between pages. Navigate adds a history entry;
// Replace swaps the current one, so going back cannot return to a page that
// needed the ended session.
type Navigator interface {
	Navigate(ctx context.Context, path string)
	Replace(ctx context.Context, path string)
}

// LogNavigator returns a Navigator for headless use that only records the
// redirect in the log.
func LogNavigator(logger zerolog.Logger) Navigator {
	return logNavigator{logger: logger}
}

type logNavigator struct {
	logger zerolog.Logger
}

func (n logNavigator) Navigate(_ context.Context, path string) {
	n.logger.Info().Str("path", path).Msg("navigate")
}

func (n logNavigator) Replace(_ context.Context, path string) {
	n.logger.Info().Str("path", path).Bool("replace", true).Msg("navigate")
}
