package a64doc

import "slices"

// Docvar keys read by the node constructors.
const (
	DocVarInstrClass    = "instr-class"
	DocVarMnemonic      = "mnemonic"
	DocVarAliasMnemonic = "alias_mnemonic"
)

// Element is a read-only view of a raw document element. Node constructors
// populate their fields from it; implementations live in etree/.
type Element interface {
	// Text returns the text of the first element matching path.
	Text(path string) (string, bool)

	// Attr returns the value of the attribute addressed by path, which ends
	// in "@name" and may be preceded by an element path.
	Attr(path string) (string, bool)

	// AllText concatenates every text fragment beneath the elements
	// matching path, in document order.
	AllText(path string) string

	// DocVars returns the key/value pairs of the element's docvars block.
	DocVars() map[string]string

	// ArchVariants returns the element's declared architecture variants.
	ArchVariants() []ArchVariant
}

// Node is implemented by every node of the instruction hierarchy.
type Node interface {
	Level() Level
}

// ArchVariant is a declared architecture variant. Feature may be empty.
type ArchVariant struct {
	Name    string `json:"name"`
	Feature string `json:"feature,omitempty"`
}

// InstructionSet is the root of the hierarchy: one A64 instruction set and
// the sections referenced by its index document.
type InstructionSet struct {
	ID        SetID
	Name      string
	IndexFile string

	Sections []*InstructionSection
}

// NewInstructionSet returns an empty set for the given id.
func NewInstructionSet(id SetID) *InstructionSet {
	return &InstructionSet{
		ID:        id,
		Name:      id.Name(),
		IndexFile: id.IndexFile(),
	}
}

// NewPlaceholderSet returns the set that owns sections loaded on their own.
func NewPlaceholderSet() *InstructionSet {
	return &InstructionSet{
		ID:        placeholderSetID,
		Name:      string(placeholderSetID),
		IndexFile: string(placeholderSetID),
	}
}

// Level implements Node.
func (s *InstructionSet) Level() Level { return LevelSet }

// EvictSection removes sec from the set's sections.
func (s *InstructionSet) EvictSection(sec *InstructionSection) {
	s.Sections = evict(s.Sections, sec)
}

// InstructionSection is one section document: a group of related
// instruction classes sharing a heading and brief description.
type InstructionSection struct {
	File    string
	ID      string
	Title   string
	Heading string
	Brief   string
	DocVars map[string]string

	Set     *InstructionSet
	Classes []*InstructionClass
}

// NewInstructionSection builds a section from its root element and appends
// it to set.
func NewInstructionSection(el Element, file string, set *InstructionSet) *InstructionSection {
	sec := &InstructionSection{
		File:    file,
		ID:      attr(el, "@id"),
		Title:   attr(el, "@title"),
		Heading: text(el, "heading"),
		DocVars: el.DocVars(),
		Set:     set,
	}
	if brief, ok := el.Text("desc/brief/para"); ok {
		sec.Brief = brief
	} else {
		sec.Brief = text(el, "desc/brief")
	}
	set.Sections = append(set.Sections, sec)
	return sec
}

// Level implements Node.
func (s *InstructionSection) Level() Level { return LevelSection }

// EvictClass removes c from the section's classes.
func (s *InstructionSection) EvictClass(c *InstructionClass) {
	s.Classes = evict(s.Classes, c)
}

// InstructionClass groups encodings sharing an encoding structure.
type InstructionClass struct {
	ID           string
	Name         string
	Kind         string
	DocVars      map[string]string
	ArchVariants []ArchVariant

	Section   *InstructionSection
	Encodings []*InstructionEncoding
}

// NewInstructionClass builds a class from its iclass element and appends it
// to sec.
func NewInstructionClass(el Element, sec *InstructionSection) *InstructionClass {
	docvars := el.DocVars()
	c := &InstructionClass{
		ID:           attr(el, "@id"),
		Name:         attr(el, "@name"),
		Kind:         docvars[DocVarInstrClass],
		DocVars:      docvars,
		ArchVariants: el.ArchVariants(),
		Section:      sec,
	}
	sec.Classes = append(sec.Classes, c)
	return c
}

// Level implements Node.
func (c *InstructionClass) Level() Level { return LevelClass }

// Set returns the instruction set owning the class.
func (c *InstructionClass) Set() *InstructionSet {
	return c.Section.Set
}

// EvictEncoding removes e from the class's encodings.
func (c *InstructionClass) EvictEncoding(e *InstructionEncoding) {
	c.Encodings = evict(c.Encodings, e)
}

// InstructionEncoding is one concrete instruction form.
type InstructionEncoding struct {
	Name          string
	Kind          string
	Mnemonic      string
	AliasMnemonic string
	Template      string
	DocVars       map[string]string
	ArchVariants  []ArchVariant

	// Features is resolved once at construction; see ResolveFeatures.
	Features []string

	Class *InstructionClass
}

// NewInstructionEncoding builds an encoding from its element and appends it
// to c. Encodings without a mnemonic are still appended; dropping them is up
// to the caller.
func NewInstructionEncoding(el Element, c *InstructionClass) *InstructionEncoding {
	docvars := el.DocVars()
	e := &InstructionEncoding{
		Name:          attr(el, "@name"),
		Kind:          docvars[DocVarInstrClass],
		Mnemonic:      docvars[DocVarMnemonic],
		AliasMnemonic: docvars[DocVarAliasMnemonic],
		Template:      el.AllText("asmtemplate"),
		DocVars:       docvars,
		ArchVariants:  el.ArchVariants(),
		Class:         c,
	}
	e.Features = ResolveFeatures(e.ArchVariants, c.ArchVariants, e.Kind, c.Kind)
	c.Encodings = append(c.Encodings, e)
	return e
}

// Level implements Node.
func (e *InstructionEncoding) Level() Level { return LevelEncoding }

// Section returns the section owning the encoding.
func (e *InstructionEncoding) Section() *InstructionSection {
	return e.Class.Section
}

// Set returns the instruction set owning the encoding.
func (e *InstructionEncoding) Set() *InstructionSet {
	return e.Class.Section.Set
}

// DisplayMnemonic returns the alias mnemonic if present, else the mnemonic.
func (e *InstructionEncoding) DisplayMnemonic() string {
	if e.AliasMnemonic != "" {
		return e.AliasMnemonic
	}
	return e.Mnemonic
}

func attr(el Element, path string) string {
	v, _ := el.Attr(path)
	return v
}

func text(el Element, path string) string {
	v, _ := el.Text(path)
	return v
}

// evict removes n from nodes, searching from the end since the node being
// evicted is almost always the most recently appended one. The vacated slot
// is cleared so the node can be collected.
func evict[T comparable](nodes []T, n T) []T {
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i] == n {
			return slices.Delete(nodes, i, i+1)
		}
	}
	return nodes
}
