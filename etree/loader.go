package etree

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"

	"github.com/beevik/etree"
	"github.com/fwojciec/a64doc"
)

// Element paths into the documentation XML.
const (
	iformPath    = "//iform[@iformfile]"
	iformFileKey = "@iformfile"
	iclassPath   = "classes/iclass"
	encodingPath = "encoding"
)

// Ensure Loader implements a64doc.Loader at compile time.
var _ a64doc.Loader = (*Loader)(nil)

// LoadStats counts the work done by a Loader.
type LoadStats struct {
	Sets      int // index documents loaded
	Sections  int // section nodes built
	Classes   int // class nodes built
	Encodings int // encoding nodes built, including dropped ones
	Dropped   int // encodings discarded for lacking a mnemonic
	Visited   int // visitor invocations
}

func (s *LoadStats) add(o LoadStats) {
	s.Sets += o.Sets
	s.Sections += o.Sections
	s.Classes += o.Classes
	s.Encodings += o.Encodings
	s.Dropped += o.Dropped
	s.Visited += o.Visited
}

// Loader implements a64doc.Loader over a directory of XML documents.
// Documents are read one at a time, in document order, on the caller's
// goroutine.
type Loader struct {
	fsys fs.FS

	mu    sync.Mutex
	stats LoadStats
}

// NewLoader returns a Loader reading documents from dir.
func NewLoader(dir string) *Loader {
	return NewLoaderFS(os.DirFS(dir))
}

// NewLoaderFS returns a Loader reading documents from fsys.
func NewLoaderFS(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Stats returns the cumulative counters of every completed call.
func (l *Loader) Stats() LoadStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

func (l *Loader) CollectSection(ctx context.Context, name string, level a64doc.Level, set *a64doc.InstructionSet) (*a64doc.InstructionSection, error) {
	w, err := l.newWalker(level, a64doc.LevelSection, nil)
	if err != nil {
		return nil, err
	}
	defer l.record(w)
	if set == nil {
		set = a64doc.NewPlaceholderSet()
	}
	sec, err := w.section(ctx, name, set)
	if err != nil {
		return nil, err
	}
	return sec, nil
}

func (l *Loader) CollectSet(ctx context.Context, id a64doc.SetID, level a64doc.Level) (*a64doc.InstructionSet, error) {
	w, err := l.newWalker(level, a64doc.LevelSet, nil)
	if err != nil {
		return nil, err
	}
	defer l.record(w)
	return w.set(ctx, id)
}

func (l *Loader) CollectSets(ctx context.Context, level a64doc.Level, ids ...a64doc.SetID) ([]*a64doc.InstructionSet, error) {
	w, err := l.newWalker(level, a64doc.LevelSet, nil)
	if err != nil {
		return nil, err
	}
	defer l.record(w)
	if len(ids) == 0 {
		ids = a64doc.SetIDs()
	}
	sets := make([]*a64doc.InstructionSet, 0, len(ids))
	for _, id := range ids {
		set, err := w.set(ctx, id)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func (l *Loader) WalkSection(ctx context.Context, name string, level a64doc.Level, set *a64doc.InstructionSet, fn a64doc.VisitFunc) error {
	w, err := l.newWalker(level, a64doc.LevelSection, fn)
	if err != nil {
		return err
	}
	defer l.record(w)
	if set == nil {
		set = a64doc.NewPlaceholderSet()
	}
	_, err = w.section(ctx, name, set)
	return stopped(err)
}

func (l *Loader) WalkSet(ctx context.Context, id a64doc.SetID, level a64doc.Level, fn a64doc.VisitFunc) error {
	w, err := l.newWalker(level, a64doc.LevelSet, fn)
	if err != nil {
		return err
	}
	defer l.record(w)
	_, err = w.set(ctx, id)
	return stopped(err)
}

func (l *Loader) WalkSets(ctx context.Context, level a64doc.Level, fn a64doc.VisitFunc, ids ...a64doc.SetID) error {
	w, err := l.newWalker(level, a64doc.LevelSet, fn)
	if err != nil {
		return err
	}
	defer l.record(w)
	if len(ids) == 0 {
		ids = a64doc.SetIDs()
	}
	for _, id := range ids {
		if _, err := w.set(ctx, id); err != nil {
			return stopped(err)
		}
	}
	return nil
}

func (l *Loader) newWalker(level, entry a64doc.Level, fn a64doc.VisitFunc) (*walker, error) {
	if level < entry || level > a64doc.LevelEncoding {
		return nil, a64doc.Errorf(a64doc.EINVALID, "cannot stop at level %s when loading from level %s", level, entry)
	}
	return &walker{fsys: l.fsys, level: level, fn: fn}, nil
}

func (l *Loader) record(w *walker) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stats.add(w.stats)
}

// stopped swallows the error a visitor uses to end a walk early.
func stopped(err error) error {
	if errors.Is(err, a64doc.ErrStop) {
		return nil
	}
	return err
}

// walker performs one depth-first traversal. With a nil fn it materializes
// the tree; otherwise it streams: each node at the stop level is visited
// and every node is evicted from its parent once its subtree is done.
type walker struct {
	fsys  fs.FS
	level a64doc.Level
	fn    a64doc.VisitFunc
	stats LoadStats
}

func (w *walker) streaming() bool {
	return w.fn != nil
}

func (w *walker) visit(n a64doc.Node) error {
	if w.fn == nil {
		return nil
	}
	w.stats.Visited++
	return w.fn(n)
}

func (w *walker) set(ctx context.Context, id a64doc.SetID) (*a64doc.InstructionSet, error) {
	if _, err := a64doc.ParseSetID(string(id)); err != nil {
		return nil, err
	}
	root, err := w.read(ctx, id.IndexFile())
	if err != nil {
		return nil, err
	}
	set := a64doc.NewInstructionSet(id)
	w.stats.Sets++

	if w.level == a64doc.LevelSet {
		return set, w.visit(set)
	}
	for iform := range Each(root, iformPath) {
		file, _ := Attr(iform, iformFileKey)
		if _, err := w.section(ctx, file, set); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func (w *walker) section(ctx context.Context, name string, set *a64doc.InstructionSet) (*a64doc.InstructionSection, error) {
	root, err := w.read(ctx, name)
	if err != nil {
		return nil, err
	}
	sec := a64doc.NewInstructionSection(Wrap(root), path.Base(name), set)
	w.stats.Sections++

	if w.level == a64doc.LevelSection {
		err = w.visit(sec)
	} else {
		for el := range Each(root, iclassPath) {
			if err = w.class(el, sec); err != nil {
				break
			}
		}
	}
	if w.streaming() {
		set.EvictSection(sec)
	}
	if err != nil {
		return nil, err
	}
	return sec, nil
}

func (w *walker) class(el *etree.Element, sec *a64doc.InstructionSection) error {
	c := a64doc.NewInstructionClass(Wrap(el), sec)
	w.stats.Classes++

	var err error
	if w.level == a64doc.LevelClass {
		err = w.visit(c)
	} else {
		for el := range Each(el, encodingPath) {
			if err = w.encoding(el, c); err != nil {
				break
			}
		}
	}
	if w.streaming() {
		sec.EvictClass(c)
	}
	return err
}

func (w *walker) encoding(el *etree.Element, c *a64doc.InstructionClass) error {
	e := a64doc.NewInstructionEncoding(Wrap(el), c)
	w.stats.Encodings++

	if e.Mnemonic == "" {
		c.EvictEncoding(e)
		w.stats.Dropped++
		return nil
	}
	err := w.visit(e)
	if w.streaming() {
		c.EvictEncoding(e)
	}
	return err
}

// read opens and parses one document, returning its root element.
func (w *walker) read(ctx context.Context, name string) (*etree.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := w.fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, a64doc.Errorf(a64doc.ENOTFOUND, "document %q not found", name)
	} else if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parsing %s: no root element", name)
	}
	return root, nil
}
