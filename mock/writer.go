package mock

import (
	"context"

	"github.com/fwojciec/a64doc"
)

var _ a64doc.CatalogWriter = (*CatalogWriter)(nil)

// CatalogWriter is a mock implementation of a64doc.CatalogWriter.
type CatalogWriter struct {
	WriteCatalogFn func(ctx context.Context, records []*a64doc.Record) error
}

func (w *CatalogWriter) WriteCatalog(ctx context.Context, records []*a64doc.Record) error {
	return w.WriteCatalogFn(ctx, records)
}
