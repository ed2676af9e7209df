// Package etree reads the A64 XML documentation with github.com/beevik/etree.
package etree

import (
	"iter"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/a64doc"
)

// Ensure Element implements a64doc.Element at compile time.
var _ a64doc.Element = Element{}

// Element adapts an *etree.Element to a64doc.Element.
type Element struct {
	el *etree.Element
}

// Wrap returns the a64doc.Element view of el. el may be nil, in which case
// every lookup reports an absent value.
func Wrap(el *etree.Element) Element {
	return Element{el: el}
}

func (e Element) Text(path string) (string, bool) { return Text(e.el, path) }

func (e Element) Attr(path string) (string, bool) { return Attr(e.el, path) }

func (e Element) AllText(path string) string { return AllText(e.el, path) }

func (e Element) DocVars() map[string]string { return DocVars(e.el) }

func (e Element) ArchVariants() []a64doc.ArchVariant { return ArchVariants(e.el) }

// Text returns the text of the first element matching path.
func Text(el *etree.Element, path string) (string, bool) {
	if el == nil {
		return "", false
	}
	found := el.FindElement(path)
	if found == nil {
		return "", false
	}
	return found.Text(), true
}

// Attr returns the value of an attribute. The last segment of path names
// the attribute ("@name"); anything before it is an element path
// ("desc/@id").
func Attr(el *etree.Element, path string) (string, bool) {
	if el == nil {
		return "", false
	}
	elemPath, name := "", path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		elemPath, name = path[:i], path[i+1:]
	}
	name, ok := strings.CutPrefix(name, "@")
	if !ok || name == "" {
		return "", false
	}
	if elemPath != "" {
		if el = el.FindElement(elemPath + "[@" + name + "]"); el == nil {
			return "", false
		}
	}
	a := el.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// Each returns the elements matching path as a single-use sequence. The path
// is evaluated when iteration starts; iterating the sequence again yields
// nothing.
func Each(el *etree.Element, path string) iter.Seq[*etree.Element] {
	used := false
	return func(yield func(*etree.Element) bool) {
		if used || el == nil {
			return
		}
		used = true
		for _, found := range el.FindElements(path) {
			if !yield(found) {
				return
			}
		}
	}
}

// AllText concatenates the character data beneath every element matching
// path, in document order.
func AllText(el *etree.Element, path string) string {
	var b strings.Builder
	for found := range Each(el, path) {
		writeText(&b, found)
	}
	return b.String()
}

func writeText(b *strings.Builder, el *etree.Element) {
	for _, tok := range el.Child {
		switch tok := tok.(type) {
		case *etree.CharData:
			b.WriteString(tok.Data)
		case *etree.Element:
			writeText(b, tok)
		}
	}
}

// DocVars collects the key/value pairs of el's docvars block. Duplicate keys
// are not reported; the last value wins.
func DocVars(el *etree.Element) map[string]string {
	docvars := make(map[string]string)
	for dv := range Each(el, "docvars/docvar") {
		key, ok := Attr(dv, "@key")
		if !ok {
			continue
		}
		value, _ := Attr(dv, "@value")
		docvars[key] = value
	}
	return docvars
}

// ArchVariants parses el's arch_variants block.
func ArchVariants(el *etree.Element) []a64doc.ArchVariant {
	var variants []a64doc.ArchVariant
	for av := range Each(el, "arch_variants/arch_variant") {
		name, _ := Attr(av, "@name")
		feature, _ := Attr(av, "@feature")
		variants = append(variants, a64doc.ArchVariant{Name: name, Feature: feature})
	}
	return variants
}
