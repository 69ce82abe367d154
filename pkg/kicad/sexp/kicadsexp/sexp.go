// Package kicadsexp is a small streaming S-expression reader for KiCad
// text formats. Quoted strings and bare atoms are kept apart so that a
// quoted value such as "hide" is never mistaken for the hide flag.
package kicadsexp

import (
	"io"
	"strconv"
	"strings"
)

// Sexp represents an S-expression node: an atom or a list.
type Sexp interface {
	// IsLeaf returns true if this is an atom (not a list)
	IsLeaf() bool

	// LeafCount returns the number of elements in a list (1 for atoms)
	LeafCount() int

	// Head returns the first element of a list
	Head() Sexp

	// Tail returns the rest of the list after the first element
	Tail() Sexp

	// String returns the textual form
	String() string
}

// Symbol is a bare atom: keyword, number or flag
type Symbol string

func (s Symbol) IsLeaf() bool   { return true }
func (s Symbol) LeafCount() int { return 1 }
func (s Symbol) Head() Sexp     { return s }
func (s Symbol) Tail() Sexp     { return nil }
func (s Symbol) String() string { return string(s) }

// String is a quoted atom, stored without its quotes and escapes
type String string

func (s String) IsLeaf() bool   { return true }
func (s String) LeafCount() int { return 1 }
func (s String) Head() Sexp     { return s }
func (s String) Tail() Sexp     { return nil }
func (s String) String() string { return strconv.Quote(string(s)) }

// List is a parenthesised sequence of expressions
type List struct {
	elements []Sexp
}

// NewList builds a list from its elements
func NewList(elements ...Sexp) *List {
	return &List{elements: elements}
}

func (l *List) IsLeaf() bool { return false }

func (l *List) LeafCount() int {
	return len(l.elements)
}

func (l *List) Head() Sexp {
	if len(l.elements) == 0 {
		return nil
	}
	return l.elements[0]
}

func (l *List) Tail() Sexp {
	if len(l.elements) <= 1 {
		return nil
	}
	return &List{elements: l.elements[1:]}
}

func (l *List) String() string {
	parts := make([]string, len(l.elements))
	for i, elem := range l.elements {
		parts[i] = elem.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Get returns the element at the given index, or nil when out of range
func (l *List) Get(index int) Sexp {
	if index < 0 || index >= len(l.elements) {
		return nil
	}
	return l.elements[index]
}

// Len returns the number of elements in the list
func (l *List) Len() int {
	return len(l.elements)
}

// Elements returns the list's elements
func (l *List) Elements() []Sexp {
	return l.elements
}

// Parse parses every top-level expression from r
func Parse(r io.Reader) ([]Sexp, error) {
	return NewParser(r).ParseAll()
}

// ParseString parses every top-level expression held in s
func ParseString(s string) ([]Sexp, error) {
	return Parse(strings.NewReader(s))
}
