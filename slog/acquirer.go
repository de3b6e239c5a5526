package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/rfontes/anuncio"
)

// Ensure LoggingAcquirer implements anuncio.Acquirer.
var _ anuncio.Acquirer = (*LoggingAcquirer)(nil)

// LoggingAcquirer wraps an Acquirer and logs which backend produced
// each page, making fallbacks visible in the run log.
type LoggingAcquirer struct {
	next   anuncio.Acquirer
	logger *slog.Logger
}

// NewLoggingAcquirer creates a new LoggingAcquirer.
func NewLoggingAcquirer(next anuncio.Acquirer, logger *slog.Logger) *LoggingAcquirer {
	return &LoggingAcquirer{next: next, logger: logger}
}

// Acquire delegates to the wrapped acquirer and logs the outcome.
func (a *LoggingAcquirer) Acquire(ctx context.Context, url string) (html string, backend anuncio.Backend, err error) {
	defer func(begin time.Time) {
		a.logger.Info("acquire",
			"url", url,
			"backend", string(backend),
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Acquire(ctx, url)
}

// Close delegates to the wrapped acquirer.
func (a *LoggingAcquirer) Close() error {
	return a.next.Close()
}
