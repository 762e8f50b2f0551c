package component

import "github.com/milk9111/easekit/common"

// Button is clickable while Interactable.
type Button struct {
	Action       string
	Interactable bool
}

var ButtonComponent = NewComponent[Button]()

// ScrollView scrolls its content by Offset while InputEnabled.
type ScrollView struct {
	Offset       common.Vec3
	InputEnabled bool
}

var ScrollViewComponent = NewComponent[ScrollView]()

// Slider shows Value within [0, 1].
type Slider struct {
	Value float64
}

var SliderComponent = NewComponent[Slider]()
