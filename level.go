package a64doc

// Level identifies a depth in the instruction hierarchy. Traversal stops
// descending once it reaches the requested level.
type Level int

// Level constants, ordered from the root of the hierarchy to its leaves.
const (
	LevelSet Level = iota
	LevelSection
	LevelClass
	LevelEncoding
)

// DefaultLevel is the stop level used when none is specified.
const DefaultLevel = LevelEncoding

var levelNames = [...]string{
	LevelSet:      "set",
	LevelSection:  "section",
	LevelClass:    "class",
	LevelEncoding: "encoding",
}

// String returns the lowercase name of the level.
func (l Level) String() string {
	if l < LevelSet || l > LevelEncoding {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLevel returns the level with the given name.
// An empty name returns DefaultLevel.
func ParseLevel(name string) (Level, error) {
	if name == "" {
		return DefaultLevel, nil
	}
	for l, n := range levelNames {
		if n == name {
			return Level(l), nil
		}
	}
	return 0, Errorf(EINVALID, "unknown level %q", name)
}
