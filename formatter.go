package a64doc

import (
	"fmt"
	"strings"
)

// FormatEncoding formats an encoding as a single listing line:
//
//	<set> <alias flag> <template> ; [<features>] '<heading>' - `<brief>` @ <file>
func FormatEncoding(e *InstructionEncoding) string {
	sec := e.Section()
	alias := "-"
	if e.AliasMnemonic != "" {
		alias = "A"
	}
	return fmt.Sprintf("%-7s %s %s ; [%s] '%s' - `%s` @ %s",
		sec.Set.Name, alias, e.Template, strings.Join(e.Features, " "),
		sec.Heading, sec.Brief, sec.File)
}

// FormatNode formats any hierarchy node as a single listing line.
// Encodings use FormatEncoding.
func FormatNode(n Node) string {
	switch n := n.(type) {
	case *InstructionSet:
		return fmt.Sprintf("%-7s %s (%d sections)", n.Name, n.IndexFile, len(n.Sections))
	case *InstructionSection:
		return fmt.Sprintf("%-7s %s '%s' - `%s` @ %s", n.Set.Name, n.ID, n.Heading, n.Brief, n.File)
	case *InstructionClass:
		kind := n.Kind
		if kind == "" {
			kind = "-"
		}
		return fmt.Sprintf("%-7s %s %s [%s] '%s' @ %s", n.Set().Name, n.ID, n.Name, kind,
			n.Section.Heading, n.Section.File)
	case *InstructionEncoding:
		return FormatEncoding(n)
	default:
		return ""
	}
}
