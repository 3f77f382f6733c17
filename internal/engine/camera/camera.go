// Package camera provides the free-look perspective camera used to view the scene.
package camera

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/shaderbasics/internal/engine/transform"
	"github.com/Faultbox/shaderbasics/pkg/math"
)

// Default frustum values.
const (
	DefaultFieldOfView float32 = 0.7583982 // ~43.45 degrees
	DefaultNearClip    float32 = 0.01
	DefaultFarClip     float32 = 10000
)

var (
	// ErrInvalidFrustum is returned for a field of view outside (0, pi) or clip planes
	// that do not satisfy 0 < near < far.
	ErrInvalidFrustum = errors.New("invalid frustum")
	// ErrInvalidViewport is returned for a viewport without a positive area.
	ErrInvalidViewport = errors.New("invalid viewport")
	// ErrSingularView is returned when the camera transform cannot be inverted.
	ErrSingularView = errors.New("camera transform is singular")
)

// Viewport is the render target region in pixels.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// AspectRatio returns width / height.
func (v Viewport) AspectRatio() float32 {
	return float32(v.Width) / float32(v.Height)
}

// Snapshot holds the matrices derived from the camera at one instant.
// Draw calls of a frame all read the same snapshot.
type Snapshot struct {
	View        math.Mat4
	Projection  math.Mat4
	ViewInverse math.Mat4
	Position    math.Vec3
}

// Camera is a perspective camera driven by its own transform.
type Camera struct {
	// Transform is owned by the camera; the view matrix is its inverse.
	Transform transform.Transform

	// ClearColor is used to clear the target before each frame.
	ClearColor math.Color

	fieldOfView float32
	nearClip    float32
	farClip     float32
	viewport    Viewport
}

// New creates a camera with the default frustum for the given viewport size.
func New(width, height int) (*Camera, error) {
	c := &Camera{
		Transform:   transform.New(),
		ClearColor:  math.CornflowerBlue,
		fieldOfView: DefaultFieldOfView,
		nearClip:    DefaultNearClip,
		farClip:     DefaultFarClip,
	}
	if err := c.SetViewport(width, height); err != nil {
		return nil, err
	}
	return c, nil
}

// ValidateFrustum checks perspective parameters without touching a camera.
func ValidateFrustum(fov, near, far float32) error {
	// Negated comparisons also reject NaN.
	if !(fov > 0) || !(fov < gomath.Pi) {
		return fmt.Errorf("%w: field of view %v must be in (0, pi)", ErrInvalidFrustum, fov)
	}
	if !(near > 0) || !(far > near) {
		return fmt.Errorf("%w: need 0 < near < far, got near=%v far=%v", ErrInvalidFrustum, near, far)
	}
	if gomath.IsInf(float64(far), 0) {
		return fmt.Errorf("%w: far clip must be finite", ErrInvalidFrustum)
	}
	return nil
}

// SetFrustum sets field of view (radians) and clip planes.
// Invalid values are rejected and the previous frustum is kept.
func (c *Camera) SetFrustum(fov, near, far float32) error {
	if err := ValidateFrustum(fov, near, far); err != nil {
		return err
	}
	c.fieldOfView = fov
	c.nearClip = near
	c.farClip = far
	return nil
}

// SetViewport sets the render target size. Width and height must be positive.
func (c *Camera) SetViewport(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, width, height)
	}
	c.viewport = Viewport{Width: width, Height: height}
	return nil
}

// FieldOfView returns the vertical field of view in radians.
func (c *Camera) FieldOfView() float32 { return c.fieldOfView }

// NearClip returns the near clip plane distance.
func (c *Camera) NearClip() float32 { return c.nearClip }

// FarClip returns the far clip plane distance.
func (c *Camera) FarClip() float32 { return c.farClip }

// Viewport returns the current viewport.
func (c *Camera) Viewport() Viewport { return c.viewport }

// AspectRatio returns the viewport aspect ratio.
func (c *Camera) AspectRatio() float32 { return c.viewport.AspectRatio() }

// Position returns the camera position in world space.
func (c *Camera) Position() math.Vec3 { return c.Transform.Position }

// View returns the world-to-camera matrix, the inverse of the transform's world matrix.
// A singular transform yields identity; use Snapshot to detect it.
func (c *Camera) View() math.Mat4 {
	return c.Transform.World().Inverse()
}

// ViewInverse returns the camera-to-world matrix.
func (c *Camera) ViewInverse() math.Mat4 {
	return c.Transform.World()
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() math.Mat4 {
	return math.Perspective(c.fieldOfView, c.AspectRatio(), c.nearClip, c.farClip)
}

// Snapshot captures view and projection for one frame.
func (c *Camera) Snapshot() (Snapshot, error) {
	world := c.Transform.World()
	view, ok := world.Invert()
	if !ok {
		return Snapshot{}, ErrSingularView
	}
	return Snapshot{
		View:        view,
		Projection:  c.Projection(),
		ViewInverse: world,
		Position:    c.Transform.Position,
	}, nil
}

// TranslateLocal moves the camera by a vector expressed in its own local frame.
// math.Vec3Forward() moves along the current viewing direction.
func (c *Camera) TranslateLocal(delta math.Vec3) {
	c.Transform.Position = c.Transform.Position.Add(c.Transform.Rotation.Rotate(delta))
}

// RotateAroundLocalAxis rotates the camera by angle radians around an axis given in its
// local frame. The axis is taken to world space with the current orientation before the
// delta rotation is built, so yaw and pitch always act relative to the view.
func (c *Camera) RotateAroundLocalAxis(localAxis math.Vec3, angle float32) {
	axis := c.Transform.Rotation.Rotate(localAxis).Normalize()
	delta := math.QuatFromAxisAngle(axis, angle)
	c.Transform.Rotation = delta.Mul(c.Transform.Rotation).Normalize()
}
