package a64doc

import (
	"context"
	"strings"
)

// Record is the flattened, display-ready form of one encoding.
type Record struct {
	ID          string   `json:"-"`
	Category    SetID    `json:"category"`
	Mnemonic    string   `json:"mnemonic"`
	Heading     string   `json:"heading"`
	Brief       string   `json:"brief"`
	File        string   `json:"file"`
	Features    []string `json:"features,omitempty"`
	Template    string   `json:"template,omitempty"`
	ContentHash string   `json:"-"`
}

// NewRecord flattens an encoding. File points at the rendered HTML page of
// the encoding's section.
func NewRecord(e *InstructionEncoding) *Record {
	sec := e.Section()
	return &Record{
		Category: sec.Set.ID,
		Mnemonic: e.DisplayMnemonic(),
		Heading:  sec.Heading,
		Brief:    sec.Brief,
		File:     HTMLFile(sec.File),
		Features: e.Features,
		Template: e.Template,
	}
}

// HTMLFile maps a section document name to its rendered page name.
func HTMLFile(sectionFile string) string {
	if base, ok := strings.CutSuffix(sectionFile, ".xml"); ok {
		return base + ".html"
	}
	return sectionFile
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.Mnemonic == "" {
		return Errorf(EINVALID, "record mnemonic required")
	}
	if r.Category == "" {
		return Errorf(EINVALID, "record category required")
	}
	return nil
}

// RecordService represents a service for storing catalog records.
type RecordService interface {
	// ReplaceRecords replaces all stored records with records.
	ReplaceRecords(ctx context.Context, records []*Record) error

	// FindRecords retrieves records matching the filter, in catalog order.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	Mnemonic *string `json:"mnemonic"`
	Category *SetID  `json:"category"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// CatalogWriter publishes a finished catalog.
type CatalogWriter interface {
	WriteCatalog(ctx context.Context, records []*Record) error
}
