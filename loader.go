package a64doc

import (
	"context"
	"errors"
)

// ErrStop may be returned by a VisitFunc to end a walk early. Walk methods
// return nil when traversal was stopped this way.
var ErrStop = errors.New("stop walk")

// VisitFunc is called once for every node at a walk's stop level. The node's
// ancestors are fully populated while it runs; its descendants are not built.
type VisitFunc func(n Node) error

// Loader reads the instruction hierarchy from the XML documentation.
//
// Collect methods materialize the tree down to the requested level and
// return it; memory grows with the number of nodes. Walk methods build the
// same nodes but hand each node at the stop level to fn and release it
// afterwards, so only the path currently being visited is retained.
//
// Section paths are relative to the loader's document directory. A nil set
// loads the section under a placeholder set. Passing no ids to the *Sets
// methods loads every set in canonical order.
//
// A document that cannot be opened fails the whole call with ENOTFOUND.
type Loader interface {
	CollectSection(ctx context.Context, path string, level Level, set *InstructionSet) (*InstructionSection, error)
	CollectSet(ctx context.Context, id SetID, level Level) (*InstructionSet, error)
	CollectSets(ctx context.Context, level Level, ids ...SetID) ([]*InstructionSet, error)

	WalkSection(ctx context.Context, path string, level Level, set *InstructionSet, fn VisitFunc) error
	WalkSet(ctx context.Context, id SetID, level Level, fn VisitFunc) error
	WalkSets(ctx context.Context, level Level, fn VisitFunc, ids ...SetID) error
}
