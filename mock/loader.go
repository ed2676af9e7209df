package mock

import (
	"context"

	"github.com/fwojciec/a64doc"
)

var _ a64doc.Loader = (*Loader)(nil)

// Loader is a mock implementation of a64doc.Loader.
type Loader struct {
	CollectSectionFn func(ctx context.Context, path string, level a64doc.Level, set *a64doc.InstructionSet) (*a64doc.InstructionSection, error)
	CollectSetFn     func(ctx context.Context, id a64doc.SetID, level a64doc.Level) (*a64doc.InstructionSet, error)
	CollectSetsFn    func(ctx context.Context, level a64doc.Level, ids ...a64doc.SetID) ([]*a64doc.InstructionSet, error)
	WalkSectionFn    func(ctx context.Context, path string, level a64doc.Level, set *a64doc.InstructionSet, fn a64doc.VisitFunc) error
	WalkSetFn        func(ctx context.Context, id a64doc.SetID, level a64doc.Level, fn a64doc.VisitFunc) error
	WalkSetsFn       func(ctx context.Context, level a64doc.Level, fn a64doc.VisitFunc, ids ...a64doc.SetID) error
}

func (l *Loader) CollectSection(ctx context.Context, path string, level a64doc.Level, set *a64doc.InstructionSet) (*a64doc.InstructionSection, error) {
	return l.CollectSectionFn(ctx, path, level, set)
}

func (l *Loader) CollectSet(ctx context.Context, id a64doc.SetID, level a64doc.Level) (*a64doc.InstructionSet, error) {
	return l.CollectSetFn(ctx, id, level)
}

func (l *Loader) CollectSets(ctx context.Context, level a64doc.Level, ids ...a64doc.SetID) ([]*a64doc.InstructionSet, error) {
	return l.CollectSetsFn(ctx, level, ids...)
}

func (l *Loader) WalkSection(ctx context.Context, path string, level a64doc.Level, set *a64doc.InstructionSet, fn a64doc.VisitFunc) error {
	return l.WalkSectionFn(ctx, path, level, set, fn)
}

func (l *Loader) WalkSet(ctx context.Context, id a64doc.SetID, level a64doc.Level, fn a64doc.VisitFunc) error {
	return l.WalkSetFn(ctx, id, level, fn)
}

func (l *Loader) WalkSets(ctx context.Context, level a64doc.Level, fn a64doc.VisitFunc, ids ...a64doc.SetID) error {
	return l.WalkSetsFn(ctx, level, fn, ids...)
}
