package creature

import "github.com/Faultbox/creatura/pkg/math"

// Slot is a fixed leg mount on the body.
type Slot struct {
	Name       string
	SeedOffset int64
	RotationY  float32
	RotationZ  float32
	Position   math.Vec3
}

// legMountHeight is the y of every leg mount.
const legMountHeight = 0.2

// Slots lists the leg mounts in generation order.
var Slots = [4]Slot{
	{Name: "Front_Left_Leg", SeedOffset: 1, RotationY: 20, RotationZ: 120, Position: math.Vec3{X: -0.7, Y: legMountHeight}},
	{Name: "Front_Right_Leg", SeedOffset: 2, RotationY: -20, RotationZ: -120, Position: math.Vec3{X: 0.7, Y: legMountHeight}},
	{Name: "Back_Left_Leg", SeedOffset: 3, RotationY: 40, RotationZ: 120, Position: math.Vec3{X: -0.7, Y: legMountHeight, Z: 0.5}},
	{Name: "Back_Right_Leg", SeedOffset: 4, RotationY: -40, RotationZ: -120, Position: math.Vec3{X: 0.7, Y: legMountHeight, Z: 0.5}},
}

// ClawPositions are the left-side mounts of crusher, baby and rave claws.
// The right claw uses the same entry with x negated.
var ClawPositions = [3]math.Vec3{
	{X: -0.6, Y: -0.1, Z: -0.72},
	{X: -0.7, Y: -0.2, Z: -0.67},
	{X: -0.85, Y: 1.65, Z: -0.17},
}

// EyePositions are the mounts of the four eye variants.
var EyePositions = [4]math.Vec3{
	{Y: 0.9, Z: -0.5},
	{Y: 1.0, Z: -0.55},
	{Y: 1.1, Z: -0.6},
	{Y: 1.2, Z: -0.65},
}

// UndersideOffset drops the underside just below the top shell.
var UndersideOffset = math.Vec3{Y: -0.1}

// MirrorX negates the x component, turning a left mount into a right one.
func MirrorX(v math.Vec3) math.Vec3 {
	v.X = -v.X
	return v
}
