package component

import "image/color"

type GraphicKind int

const (
	GraphicRect GraphicKind = iota
	GraphicText
)

// Graphic is a drawable element. Alpha multiplies the color's own alpha.
type Graphic struct {
	Kind    GraphicKind
	Color   color.RGBA
	Text    string
	Alpha   float64
	Enabled bool
	Layer   int
	// Screen graphics ignore the camera.
	Screen bool
}

var GraphicComponent = NewComponent[Graphic]()

// Fill draws a portion of the graphic, used for radial cooldown overlays.
type Fill struct {
	Amount float64
}

var FillComponent = NewComponent[Fill]()

// Active gates a whole subtree. Inactive roots are skipped by rendering and
// their fades abort.
type Active struct {
	On bool
}

var ActiveComponent = NewComponent[Active]()
