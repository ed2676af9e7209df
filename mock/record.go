package mock

import (
	"context"

	"github.com/fwojciec/a64doc"
)

var _ a64doc.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of a64doc.RecordService.
type RecordService struct {
	ReplaceRecordsFn func(ctx context.Context, records []*a64doc.Record) error
	FindRecordsFn    func(ctx context.Context, filter a64doc.RecordFilter) ([]*a64doc.Record, error)
}

func (s *RecordService) ReplaceRecords(ctx context.Context, records []*a64doc.Record) error {
	return s.ReplaceRecordsFn(ctx, records)
}

func (s *RecordService) FindRecords(ctx context.Context, filter a64doc.RecordFilter) ([]*a64doc.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}
