package a64doc

// SetID identifies one of the A64 instruction sets.
type SetID string

// Instruction set identifiers.
const (
	SetBase   SetID = "base"
	SetSIMDFP SetID = "simdfp"
	SetSVE    SetID = "sve"
	SetSME    SetID = "sme"
)

// placeholderSetID is used for sections loaded without an owning set.
const placeholderSetID SetID = "-"

type setInfo struct {
	name      string
	indexFile string
}

var setTable = map[SetID]setInfo{
	SetBase:   {name: "Base", indexFile: "index.xml"},
	SetSIMDFP: {name: "SIMD&FP", indexFile: "fpsimdindex.xml"},
	SetSVE:    {name: "SVE", indexFile: "sveindex.xml"},
	SetSME:    {name: "SME", indexFile: "mortlachindex.xml"},
}

// SetIDs returns every known instruction set in canonical order.
func SetIDs() []SetID {
	return []SetID{SetBase, SetSIMDFP, SetSVE, SetSME}
}

// ParseSetID validates an instruction set identifier.
func ParseSetID(s string) (SetID, error) {
	id := SetID(s)
	if _, ok := setTable[id]; !ok {
		return "", Errorf(EINVALID, "unknown instruction set %q", s)
	}
	return id, nil
}

// Name returns the display name of the set, or the raw id when unknown.
func (id SetID) Name() string {
	if info, ok := setTable[id]; ok {
		return info.name
	}
	return string(id)
}

// IndexFile returns the file name of the set's index document.
func (id SetID) IndexFile() string {
	return setTable[id].indexFile
}

// Order returns the rank of the set in canonical order. Unknown ids sort last.
func (id SetID) Order() int {
	for i, s := range SetIDs() {
		if s == id {
			return i
		}
	}
	return len(setTable)
}
