// Package a64doc builds a catalog of A64 instructions from the Arm
// machine-readable XML documentation. It walks the index and section
// documents of each instruction set, builds a typed node tree
// (set, section, class, encoding) and resolves the architecture features
// each encoding requires.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., etree/, sqlite/, slog/).
package a64doc
