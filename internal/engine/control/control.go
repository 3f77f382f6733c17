// Package control turns per-frame input into camera motion and render toggles.
package control

import (
	"github.com/Faultbox/shaderbasics/internal/engine/camera"
	"github.com/Faultbox/shaderbasics/internal/engine/gfx"
	"github.com/Faultbox/shaderbasics/pkg/math"
)

// ReferenceFrame is the frame time the speeds are expressed in.
const ReferenceFrame float32 = 1.0 / 60.0

// Default speeds per reference frame.
const (
	DefaultTranslateSpeed float32 = 0.05
	DefaultRotateSpeed    float32 = 0.01
)

// Controls is one frame of driver input. Movement fields are held states;
// the rest are pulses that fire once per key press.
type Controls struct {
	Forward, Backward, Left, Right        bool
	YawLeft, YawRight, PitchUp, PitchDown bool

	ToggleWireframe bool
	ToggleCulling   bool

	// ToggleVisible lists object indices whose visibility flips this frame.
	ToggleVisible []int

	Escape  bool
	Confirm bool
	Cancel  bool
}

// Toggler flips the visibility of the i-th drawable.
type Toggler interface {
	ToggleVisible(i int)
}

// Controller applies Controls to a camera. Escape asks for confirmation; while
// confirming, movement and toggles are ignored until Confirm or Cancel.
type Controller struct {
	TranslateSpeed float32
	RotateSpeed    float32
	Visibility     Toggler

	state      gfx.RenderState
	confirming bool
	quit       bool
}

// New creates a controller with the given per-reference-frame speeds.
func New(translateSpeed, rotateSpeed float32) *Controller {
	return &Controller{TranslateSpeed: translateSpeed, RotateSpeed: rotateSpeed}
}

// RenderState returns the rasterizer state selected by the toggles.
func (c *Controller) RenderState() gfx.RenderState { return c.state }

// SetRenderState sets the state the toggles start from.
func (c *Controller) SetRenderState(s gfx.RenderState) { c.state = s }

// ConfirmingExit reports whether the controller is waiting for Confirm or Cancel.
func (c *Controller) ConfirmingExit() bool { return c.confirming }

// Quit reports whether exit was confirmed.
func (c *Controller) Quit() bool { return c.quit }

// Update applies one frame of input. elapsed is the frame time in seconds;
// magnitudes scale with it so motion is frame-rate independent.
func (c *Controller) Update(cam *camera.Camera, in Controls, elapsed float32) {
	if c.confirming {
		switch {
		case in.Confirm:
			c.quit = true
		case in.Cancel:
			c.confirming = false
		}
		return
	}
	if in.Escape {
		c.confirming = true
		return
	}

	scale := elapsed / ReferenceFrame
	step := c.TranslateSpeed * scale
	turn := c.RotateSpeed * scale

	if in.Forward {
		cam.TranslateLocal(math.Vec3Forward().Scale(step))
	}
	if in.Left {
		cam.TranslateLocal(math.Vec3Left().Scale(step))
	}
	if in.Right {
		cam.TranslateLocal(math.Vec3Right().Scale(step))
	}
	if in.Backward {
		cam.TranslateLocal(math.Vec3Backward().Scale(step))
	}

	if in.YawLeft {
		cam.RotateAroundLocalAxis(math.Vec3Up(), turn)
	}
	if in.YawRight {
		cam.RotateAroundLocalAxis(math.Vec3Down(), turn)
	}
	if in.PitchUp {
		cam.RotateAroundLocalAxis(math.Vec3Right(), turn)
	}
	if in.PitchDown {
		cam.RotateAroundLocalAxis(math.Vec3Left(), turn)
	}

	if in.ToggleWireframe {
		c.state.Wireframe = !c.state.Wireframe
	}
	if in.ToggleCulling {
		c.state.CullingOff = !c.state.CullingOff
	}
	if c.Visibility != nil {
		for _, i := range in.ToggleVisible {
			c.Visibility.ToggleVisible(i)
		}
	}
}
