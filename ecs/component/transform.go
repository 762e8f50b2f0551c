package component

import "github.com/milk9111/easekit/common"

// Transform is local to the Parent, if any. Euler is in degrees.
type Transform struct {
	Position common.Vec3
	Euler    common.Vec3
	Scale    common.Vec3
	Forward  common.Vec3
}

var TransformComponent = NewComponent[Transform]()

// Parent links an entity under another for world-space resolution and
// subtree fades. Entity holds the raw ecs.Entity value.
type Parent struct {
	Entity uint64
}

var ParentComponent = NewComponent[Parent]()

// Size is the width and height of a rectangular element in screen units.
type Size struct {
	W float64
	H float64
}

var SizeComponent = NewComponent[Size]()

type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
