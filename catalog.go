package a64doc

import (
	"cmp"
	"context"
	"slices"
)

// Catalog walks the given instruction sets (all of them when ids is empty)
// and returns one record per distinct (mnemonic, section file) pair, in
// traversal order. The first encoding seen for a pair wins.
//
// Nothing is returned on error; a catalog is either complete or absent.
func Catalog(ctx context.Context, loader Loader, ids ...SetID) ([]*Record, error) {
	var records []*Record
	seen := make(map[string]struct{})

	err := loader.WalkSets(ctx, LevelEncoding, func(n Node) error {
		e, ok := n.(*InstructionEncoding)
		if !ok {
			return nil
		}
		key := e.Mnemonic + "@" + e.Section().File
		if _, dup := seen[key]; dup {
			return nil
		}
		seen[key] = struct{}{}
		records = append(records, NewRecord(e))
		return nil
	}, ids...)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// SortRecords orders records by mnemonic, then instruction set, then heading.
func SortRecords(records []*Record) {
	slices.SortStableFunc(records, func(a, b *Record) int {
		if c := cmp.Compare(a.Mnemonic, b.Mnemonic); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Category.Order(), b.Category.Order()); c != 0 {
			return c
		}
		return cmp.Compare(a.Heading, b.Heading)
	})
}
