package ast

import "fmt"

// Position identifies a single byte/line/column location in a source file.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// IsValid reports whether the position was ever set.
func (p Position) IsValid() bool {
	return p.Line > 0
}
