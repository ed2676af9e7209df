package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/a64doc"
)

// Ensure LoggingRecordService implements a64doc.RecordService.
var _ a64doc.RecordService = (*LoggingRecordService)(nil)

// LoggingRecordService wraps a RecordService with logging.
type LoggingRecordService struct {
	next   a64doc.RecordService
	logger *slog.Logger
}

// NewLoggingRecordService creates a new LoggingRecordService.
func NewLoggingRecordService(next a64doc.RecordService, logger *slog.Logger) *LoggingRecordService {
	return &LoggingRecordService{next: next, logger: logger}
}

// ReplaceRecords delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) ReplaceRecords(ctx context.Context, records []*a64doc.Record) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("replace records",
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReplaceRecords(ctx, records)
}

// FindRecords delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) FindRecords(ctx context.Context, filter a64doc.RecordFilter) (records []*a64doc.Record, err error) {
	defer func(begin time.Time) {
		mnemonic := ""
		if filter.Mnemonic != nil {
			mnemonic = *filter.Mnemonic
		}
		s.logger.Info("find records",
			"mnemonic", mnemonic,
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecords(ctx, filter)
}
