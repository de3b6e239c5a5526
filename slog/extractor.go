package slog

import (
	"log/slog"
	"time"

	"github.com/rfontes/anuncio"
)

// Ensure LoggingExtractor implements anuncio.Extractor.
var _ anuncio.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with per-field debug logging.
type LoggingExtractor struct {
	next   anuncio.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next anuncio.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs one event per
// field plus a summary with the required-field success ratio.
func (e *LoggingExtractor) Extract(html string) (*anuncio.Report, error) {
	begin := time.Now()
	report, err := e.next.Extract(html)
	if err != nil {
		e.logger.Info("extract",
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}

	for _, res := range report.Results {
		if res.Found {
			e.logger.Debug("field resolved",
				"field", string(res.Field),
				"strategy", res.Strategy,
			)
		} else {
			e.logger.Debug("field absent",
				"field", string(res.Field),
				"required", res.Required,
				"reason", res.Reason,
			)
		}
	}

	e.logger.Info("extract",
		"fields", len(report.Results),
		"success_ratio", report.SuccessRatio(),
		"duration", time.Since(begin),
		"err", nil,
	)
	return report, nil
}
