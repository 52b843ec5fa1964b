package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/crtsim/internal/camera"
)

func speedRatio(cur, base float32) float32 {
	return float32(math.Round(float64(cur/base*1000)) / 1000)
}

func (u *updater) changeSpeed(cur *float32, base float32, label string, notify func(float32)) {
	before := *cur
	if u.in.SpeedUp.JustPressed() && *cur < 10000 {
		*cur *= 2
	}
	if u.in.SpeedDown.JustPressed() && *cur > 0.01 {
		*cur /= 2
	}
	if *cur == before {
		return
	}
	ratio := speedRatio(*cur, base)
	u.message("%s: %gx", label, ratio)
	notify(ratio)
}

func (u *updater) updateSpeeds() error {
	res := u.res
	switch {
	case u.in.Alt:
	case u.in.Shift:
		u.changeSpeed(&res.FilterSpeed, PixelManipulationBaseSpeed,
			"Pixel manipulation speed", u.d.DispatchChangePixelSpeed)
	default:
		u.changeSpeed(&res.Camera.TurningSpeed, TurningBaseSpeed,
			"Turning camera speed", u.d.DispatchChangeTurningSpeed)
		u.changeSpeed(&res.Camera.MovementSpeed, res.Initial.MovementSpeed,
			"Translation camera speed", u.d.DispatchChangeMovementSpeed)
	}

	if u.in.ResetSpeeds {
		res.Camera.TurningSpeed = TurningBaseSpeed
		res.Camera.MovementSpeed = res.Initial.MovementSpeed
		res.FilterSpeed = PixelManipulationBaseSpeed
		u.d.DispatchTopMessage("All speeds have been reset.")
		u.d.DispatchChangePixelSpeed(1)
		u.d.DispatchChangeTurningSpeed(1)
		u.d.DispatchChangeMovementSpeed(1)
	}
	return nil
}

func (u *updater) updateCamera() error {
	cam := &u.res.Camera
	in := u.in
	dt := u.dt

	if in.CameraMovementMode.JustPressed() {
		cam.LockedMode = !cam.LockedMode
		msg := "Camera movement: free."
		if cam.LockedMode {
			msg = "Camera movement: locked."
		}
		u.d.DispatchTopMessage(msg)
		u.d.DispatchChangeCameraMovementMode(cam.LockedMode)
	}

	moves := []struct {
		on  bool
		dir camera.Direction
	}{
		{in.WalkLeft, camera.Left},
		{in.WalkRight, camera.Right},
		{in.WalkUp, camera.Up},
		{in.WalkDown, camera.Down},
		{in.WalkForward, camera.Forward},
		{in.WalkBackward, camera.Backward},
	}
	for _, m := range moves {
		if m.on {
			cam.Advance(m.dir, dt)
		}
	}

	turns := []struct {
		on  bool
		dir camera.Direction
	}{
		{in.TurnLeft, camera.Left},
		{in.TurnRight, camera.Right},
		{in.TurnUp, camera.Up},
		{in.TurnDown, camera.Down},
	}
	for _, t := range turns {
		if t.on {
			cam.Turn(t.dir, dt)
		}
	}

	if !in.InputFocused {
		if in.RotateLeft {
			cam.Rotate(camera.Left, dt)
		}
		if in.RotateRight {
			cam.Rotate(camera.Right, dt)
		}
	}

	switch {
	case in.MouseClick.JustPressed():
		u.d.DispatchRequestPointerLock()
	case in.MouseClick.Activated():
		cam.Drag(in.MousePositionX, in.MousePositionY)
	case in.MouseClick.JustReleased():
		u.d.DispatchExitPointerLock()
	}

	switch {
	case in.CameraZoom.Increase:
		cam.ChangeZoom(dt*-100, u.d)
	case in.CameraZoom.Decrease:
		cam.ChangeZoom(dt*100, u.d)
	case in.MouseScrollY != 0:
		cam.ChangeZoom(in.MouseScrollY, u.d)
	}

	if err := u.cameraOverrides(); err != nil {
		return err
	}

	if in.ResetPosition {
		cam.Reset(u.res.Initial.PositionZ)
		u.d.DispatchChangeCameraZoom(cam.Zoom)
		u.d.DispatchTopMessage("The camera have been reset.")
	}

	cam.Update(u.d)
	return nil
}

func (u *updater) cameraOverrides() error {
	cam := &u.res.Camera
	ev := u.in.Custom
	if ev.Kind == "" {
		return nil
	}

	if ev.Is("camera_zoom") {
		z, err := ev.Float()
		if err != nil {
			return err
		}
		cam.ChangeZoom(float32(z)-cam.Zoom, u.d)
		return nil
	}

	vectors := []struct {
		prefix string
		get    func() mgl32.Vec3
		set    func(mgl32.Vec3)
	}{
		{"camera_pos_", cam.Position, cam.SetPosition},
		{"camera_direction_", cam.Direction, cam.SetDirection},
		{"camera_axis_up_", cam.AxisUp, cam.SetAxisUp},
	}
	for _, v := range vectors {
		for i, axis := range []string{"x", "y", "z"} {
			if !ev.Is(v.prefix + axis) {
				continue
			}
			f, err := ev.Float()
			if err != nil {
				return err
			}
			vec := v.get()
			vec[i] = float32(f)
			v.set(vec)
			return nil
		}
	}
	return nil
}
