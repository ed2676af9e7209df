package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/a64doc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ a64doc.RecordService = (*RecordService)(nil)

// RecordService implements a64doc.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// hashContent returns the hex xxHash of s.
func hashContent(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}

// ReplaceRecords replaces every stored record in a single transaction.
// Records are assigned fresh IDs and content hashes. Nothing is written if
// any record is invalid.
func (s *RecordService) ReplaceRecords(ctx context.Context, records []*a64doc.Record) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (id, category, category_order, mnemonic, heading, brief, file, features, template, content_hash, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		r.ID = uuid.New().String()
		r.ContentHash = hashContent(r.Template)
		if _, err := stmt.ExecContext(ctx, r.ID, string(r.Category), r.Category.Order(), r.Mnemonic,
			r.Heading, r.Brief, r.File, strings.Join(r.Features, " "), r.Template, r.ContentHash, i); err != nil {
			return fmt.Errorf("inserting record %s: %w", r.Mnemonic, err)
		}
	}

	return tx.Commit()
}

// FindRecords retrieves records matching the filter, ordered by mnemonic,
// instruction set and heading.
func (s *RecordService) FindRecords(ctx context.Context, filter a64doc.RecordFilter) ([]*a64doc.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, category, mnemonic, heading, brief, file, features, template, content_hash FROM records WHERE 1=1")

	if filter.Mnemonic != nil {
		query.WriteString(" AND mnemonic = ?")
		args = append(args, *filter.Mnemonic)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, string(*filter.Category))
	}

	query.WriteString(" ORDER BY mnemonic ASC, category_order ASC, heading ASC, position ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*a64doc.Record
	for rows.Next() {
		var r a64doc.Record
		var category, features string

		if err := rows.Scan(&r.ID, &category, &r.Mnemonic, &r.Heading, &r.Brief, &r.File,
			&features, &r.Template, &r.ContentHash); err != nil {
			return nil, err
		}
		r.Category = a64doc.SetID(category)
		r.Features = strings.Fields(features)

		records = append(records, &r)
	}

	return records, rows.Err()
}
