// Package camera is the free-flying perspective camera looking at the
// emulated screen.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/crtsim/internal/events"
)

type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
	Forward
	Backward
)

const (
	MinZoom     float32 = 1
	MaxZoom     float32 = 45
	DefaultZoom float32 = 45

	turnFactor float32 = 0.25
	dragFactor float32 = 0.001
	nearPlane  float32 = 0.01
	farPlane   float32 = 10000
)

var (
	worldForward = mgl32.Vec3{0, 0, -1}
	worldUp      = mgl32.Vec3{0, 1, 0}
)

// Camera holds the pose and speeds. Direction and up are kept as given and
// never re-orthonormalised.
type Camera struct {
	position  mgl32.Vec3
	direction mgl32.Vec3
	up        mgl32.Vec3

	Zoom          float32
	MovementSpeed float32
	TurningSpeed  float32
	// LockedMode restricts translation to the world axes and disables
	// turning, roll and drag.
	LockedMode bool

	dispatched    events.CameraPose
	hasDispatched bool
}

func New(position mgl32.Vec3, movementSpeed, turningSpeed float32) Camera {
	return Camera{
		position:      position,
		direction:     worldForward,
		up:            worldUp,
		Zoom:          DefaultZoom,
		MovementSpeed: movementSpeed,
		TurningSpeed:  turningSpeed,
	}
}

func (c *Camera) Position() mgl32.Vec3  { return c.position }
func (c *Camera) Direction() mgl32.Vec3 { return c.direction }
func (c *Camera) AxisUp() mgl32.Vec3    { return c.up }

func (c *Camera) SetPosition(p mgl32.Vec3)  { c.position = p }
func (c *Camera) SetDirection(d mgl32.Vec3) { c.direction = d }
func (c *Camera) SetAxisUp(u mgl32.Vec3)    { c.up = u }

func (c *Camera) Pose() events.CameraPose {
	return events.CameraPose{Position: c.position, Direction: c.direction, Up: c.up}
}

func (c *Camera) axes() (forward, up, right mgl32.Vec3) {
	if c.LockedMode {
		return worldForward, worldUp, worldForward.Cross(worldUp)
	}
	return c.direction, c.up, safeNormalize(c.direction.Cross(c.up))
}

// Advance translates the camera along one of its six directions.
func (c *Camera) Advance(dir Direction, dt float32) {
	forward, up, right := c.axes()
	v := c.MovementSpeed * dt
	switch dir {
	case Left:
		c.position = c.position.Sub(right.Mul(v))
	case Right:
		c.position = c.position.Add(right.Mul(v))
	case Up:
		c.position = c.position.Add(up.Mul(v))
	case Down:
		c.position = c.position.Sub(up.Mul(v))
	case Forward:
		c.position = c.position.Add(forward.Mul(v))
	case Backward:
		c.position = c.position.Sub(forward.Mul(v))
	}
}

// Turn yaws (left/right) or pitches (up/down) the camera.
func (c *Camera) Turn(dir Direction, dt float32) {
	angle := c.TurningSpeed * dt * turnFactor
	switch dir {
	case Left:
		c.yaw(angle)
	case Right:
		c.yaw(-angle)
	case Up:
		c.pitch(angle)
	case Down:
		c.pitch(-angle)
	}
}

// Rotate rolls the camera around its viewing direction.
func (c *Camera) Rotate(dir Direction, dt float32) {
	if c.LockedMode {
		return
	}
	angle := c.TurningSpeed * dt * turnFactor
	switch dir {
	case Left:
		c.up = rotate(c.up, c.direction, -angle)
	case Right:
		c.up = rotate(c.up, c.direction, angle)
	}
}

// Drag turns the camera by a mouse delta in pixels.
func (c *Camera) Drag(dx, dy float32) {
	scale := c.TurningSpeed * dragFactor
	c.yaw(-dx * scale)
	c.pitch(-dy * scale)
}

func (c *Camera) yaw(angle float32) {
	if c.LockedMode || angle == 0 {
		return
	}
	c.direction = rotate(c.direction, c.up, angle)
}

func (c *Camera) pitch(angle float32) {
	if c.LockedMode || angle == 0 {
		return
	}
	right := safeNormalize(c.direction.Cross(c.up))
	c.direction = rotate(c.direction, right, angle)
	c.up = rotate(c.up, right, angle)
}

// ChangeZoom adds delta degrees to the field of view, clamped to
// [MinZoom, MaxZoom]. Clamping reports the bound; any change reports the
// new zoom.
func (c *Camera) ChangeZoom(delta float32, d events.Dispatcher) {
	before := c.Zoom
	c.Zoom += delta
	if c.Zoom < MinZoom {
		c.Zoom = MinZoom
		d.DispatchMinimumValue(float64(MinZoom))
	} else if c.Zoom > MaxZoom {
		c.Zoom = MaxZoom
		d.DispatchMaximumValue(float64(MaxZoom))
	}
	if c.Zoom != before {
		d.DispatchChangeCameraZoom(c.Zoom)
	}
}

// Reset restores the initial pose at distance z and the default zoom.
func (c *Camera) Reset(z float32) {
	c.position = mgl32.Vec3{0, 0, z}
	c.direction = worldForward
	c.up = worldUp
	c.Zoom = DefaultZoom
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.direction), c.up)
}

func (c *Camera) Projection(width, height float32) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = width / height
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Zoom), aspect, nearPlane, farPlane)
}

// Update dispatches the pose when it moved since the last dispatch.
func (c *Camera) Update(d events.Dispatcher) {
	pose := c.Pose()
	if c.hasDispatched && pose == c.dispatched {
		return
	}
	c.dispatched = pose
	c.hasDispatched = true
	d.DispatchCameraUpdate(pose.Position, pose.Direction, pose.Up)
}

func rotate(v, axis mgl32.Vec3, angle float32) mgl32.Vec3 {
	if axis.Len() == 0 {
		return v
	}
	return mgl32.QuatRotate(angle, axis.Normalize()).Rotate(v)
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}
