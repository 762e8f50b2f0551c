package modal

import (
	"fmt"
	"strings"
)

// Style is the motion a modal uses to enter or leave the screen.
type Style int

const (
	Scale Style = iota
	SlideUp
	SlideDown
	SlideLeft
	SlideRight
	Fade
)

var styleNames = map[Style]string{
	Scale:      "scale",
	SlideUp:    "slide_up",
	SlideDown:  "slide_down",
	SlideLeft:  "slide_left",
	SlideRight: "slide_right",
	Fade:       "fade",
}

// Styles lists every style in declaration order.
func Styles() []Style {
	return []Style{Scale, SlideUp, SlideDown, SlideLeft, SlideRight, Fade}
}

func (s Style) String() string {
	if n, ok := styleNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle accepts the snake_case names used in prefabs.
func ParseStyle(name string) (Style, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for s, v := range styleNames {
		if v == n {
			return s, nil
		}
	}
	return Scale, fmt.Errorf("modal: unknown style %q", name)
}

func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Style) UnmarshalText(b []byte) error {
	v, err := ParseStyle(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// State is the modal's lifecycle position.
type State int

const (
	Closed State = iota
	Opening
	Open
	Closing
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}
