// Package scene keeps the ordered set of geometry objects drawn each frame.
package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderbasics/internal/engine/geometry"
	"github.com/Faultbox/shaderbasics/internal/engine/gfx"
	"github.com/Faultbox/shaderbasics/internal/logger"
)

// Scene draws its objects in insertion order.
type Scene struct {
	objects []*geometry.Object
	log     *zap.Logger
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{log: logger.Named("scene")}
}

// Add appends o and returns its index.
func (s *Scene) Add(o *geometry.Object) int {
	s.objects = append(s.objects, o)
	return len(s.objects) - 1
}

// Len returns the number of objects.
func (s *Scene) Len() int { return len(s.objects) }

// Objects returns the objects in draw order.
func (s *Scene) Objects() []*geometry.Object { return s.objects }

// Find returns the first object with the given name.
func (s *Scene) Find(name string) (*geometry.Object, bool) {
	for _, o := range s.objects {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// ToggleVisible flips the visibility of object i. Out of range indices are ignored.
func (s *Scene) ToggleVisible(i int) {
	if i < 0 || i >= len(s.objects) {
		return
	}
	o := s.objects[i]
	o.Visible = !o.Visible
	s.log.Debug("visibility toggled", zap.String("object", o.Name), zap.Bool("visible", o.Visible))
}

// Load loads every object that is still unloaded with program.
func (s *Scene) Load(dev gfx.Device, program gfx.Program) error {
	for _, o := range s.objects {
		if o.State() != geometry.Unloaded {
			continue
		}
		if err := o.Load(dev, program); err != nil {
			return err
		}
	}
	return nil
}

// Draw draws each object. Hidden objects are skipped by the objects themselves.
// The frame stops at the first failing object.
func (s *Scene) Draw(frame geometry.Frame) error {
	for i, o := range s.objects {
		if err := o.Draw(frame); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
	}
	return nil
}

// Dispose releases every object.
func (s *Scene) Dispose() {
	for _, o := range s.objects {
		o.Dispose()
	}
	s.log.Debug("disposed", zap.Int("objects", len(s.objects)))
}
