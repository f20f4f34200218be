package tools

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownTool = errors.New("unknown tool")

// Kind selects what a pointer gesture does to the board.
type Kind int

const (
	Brush Kind = iota
	Fill
	Eraser
	Picker
	Pan
)

var kindNames = [...]string{"brush", "fill", "eraser", "picker", "pan"}

// Kinds lists every tool in toolbar order.
func Kinds() []Kind {
	return []Kind{Brush, Fill, Eraser, Picker, Pan}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return Brush, fmt.Errorf("%w: %q", ErrUnknownTool, s)
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// paints reports whether the tool writes cells while dragging.
func (k Kind) paints() bool {
	return k == Brush || k == Eraser
}
