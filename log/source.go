package log

import (
	"context"
	"log/slog"
	"time"

	"gitref/catalog"
	"gitref/model"
)

// Ensure LoggingSource implements catalog.Source.
var _ catalog.Source = (*LoggingSource)(nil)

// LoggingSource wraps a catalog.Source and logs every read.
type LoggingSource struct {
	next   catalog.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next catalog.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Name delegates to the wrapped source.
func (s *LoggingSource) Name() string {
	return s.next.Name()
}

// Records reads from the wrapped source, logging record count and duration.
func (s *LoggingSource) Records(ctx context.Context) ([]model.Command, error) {
	begin := time.Now()
	records, err := s.next.Records(ctx)
	if err != nil {
		s.logger.Error("load catalog",
			"source", s.next.Name(),
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	s.logger.Info("load catalog",
		"source", s.next.Name(),
		"records", len(records),
		"duration", time.Since(begin),
	)
	return records, nil
}
