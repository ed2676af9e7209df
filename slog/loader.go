// Package slog provides logging decorators for a64doc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/a64doc"
)

// Ensure LoggingLoader implements a64doc.Loader.
var _ a64doc.Loader = (*LoggingLoader)(nil)

// LoggingLoader wraps a Loader with logging of every load and walk.
type LoggingLoader struct {
	next   a64doc.Loader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next a64doc.Loader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// CollectSection delegates to the wrapped loader and logs the operation.
func (l *LoggingLoader) CollectSection(ctx context.Context, path string, level a64doc.Level, set *a64doc.InstructionSet) (sec *a64doc.InstructionSection, err error) {
	defer func(begin time.Time) {
		classes := 0
		if sec != nil {
			classes = len(sec.Classes)
		}
		l.logger.Info("collect section",
			"path", path,
			"level", level.String(),
			"classes", classes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.CollectSection(ctx, path, level, set)
}

// CollectSet delegates to the wrapped loader and logs the operation.
func (l *LoggingLoader) CollectSet(ctx context.Context, id a64doc.SetID, level a64doc.Level) (set *a64doc.InstructionSet, err error) {
	defer func(begin time.Time) {
		sections := 0
		if set != nil {
			sections = len(set.Sections)
		}
		l.logger.Info("collect set",
			"set", string(id),
			"level", level.String(),
			"sections", sections,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.CollectSet(ctx, id, level)
}

// CollectSets delegates to the wrapped loader and logs the operation.
func (l *LoggingLoader) CollectSets(ctx context.Context, level a64doc.Level, ids ...a64doc.SetID) (sets []*a64doc.InstructionSet, err error) {
	defer func(begin time.Time) {
		l.logger.Info("collect sets",
			"sets", setNames(ids),
			"level", level.String(),
			"count", len(sets),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.CollectSets(ctx, level, ids...)
}

// WalkSection delegates to the wrapped loader and logs the number of visits.
func (l *LoggingLoader) WalkSection(ctx context.Context, path string, level a64doc.Level, set *a64doc.InstructionSet, fn a64doc.VisitFunc) (err error) {
	fn, visits := counting(fn)
	defer func(begin time.Time) {
		l.logger.Info("walk section",
			"path", path,
			"level", level.String(),
			"visits", *visits,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.WalkSection(ctx, path, level, set, fn)
}

// WalkSet delegates to the wrapped loader and logs the number of visits.
func (l *LoggingLoader) WalkSet(ctx context.Context, id a64doc.SetID, level a64doc.Level, fn a64doc.VisitFunc) (err error) {
	fn, visits := counting(fn)
	defer func(begin time.Time) {
		l.logger.Info("walk set",
			"set", string(id),
			"level", level.String(),
			"visits", *visits,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.WalkSet(ctx, id, level, fn)
}

// WalkSets delegates to the wrapped loader and logs the number of visits.
func (l *LoggingLoader) WalkSets(ctx context.Context, level a64doc.Level, fn a64doc.VisitFunc, ids ...a64doc.SetID) (err error) {
	fn, visits := counting(fn)
	defer func(begin time.Time) {
		l.logger.Info("walk sets",
			"sets", setNames(ids),
			"level", level.String(),
			"visits", *visits,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.WalkSets(ctx, level, fn, ids...)
}

// counting wraps fn so that the returned counter tracks its invocations.
func counting(fn a64doc.VisitFunc) (a64doc.VisitFunc, *int) {
	n := new(int)
	if fn == nil {
		return nil, n
	}
	return func(node a64doc.Node) error {
		*n++
		return fn(node)
	}, n
}

func setNames(ids []a64doc.SetID) []string {
	if len(ids) == 0 {
		ids = a64doc.SetIDs()
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return names
}
