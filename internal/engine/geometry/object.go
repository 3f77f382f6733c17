// Package geometry composes mesh data, a transform and a material binding into a
// drawable object.
package geometry

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderbasics/internal/engine/camera"
	"github.com/Faultbox/shaderbasics/internal/engine/gfx"
	"github.com/Faultbox/shaderbasics/internal/engine/material"
	"github.com/Faultbox/shaderbasics/internal/engine/mesh"
	"github.com/Faultbox/shaderbasics/internal/engine/transform"
	"github.com/Faultbox/shaderbasics/internal/logger"
)

var (
	// ErrNotLoaded is returned when drawing an object that has not been loaded.
	ErrNotLoaded = errors.New("geometry: object not loaded")
	// ErrDisposed is returned by any operation on a disposed object.
	ErrDisposed = errors.New("geometry: object disposed")
	// ErrAlreadyLoaded is returned when Load is called twice.
	ErrAlreadyLoaded = errors.New("geometry: object already loaded")
)

// State is the lifecycle stage of an Object.
type State int

// Lifecycle stages, in the only order an Object moves through them.
const (
	Unloaded State = iota
	Loaded
	Disposed
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loaded:
		return "loaded"
	case Disposed:
		return "disposed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Viewer supplies the camera matrices for a frame.
type Viewer interface {
	Snapshot() (camera.Snapshot, error)
}

// Frame carries the per-frame inputs of a draw.
type Frame struct {
	Time  float32 // seconds since start
	State gfx.RenderState
}

// Options controls which vertex attributes are derived at load.
type Options struct {
	AutoNormals  bool
	AutoTangents bool
	Tangents     mesh.TangentOptions
}

// Object is a drawable mesh instance. It owns its transform, mesh data and GPU
// buffers; the program is shared and owned by whoever supplied it.
type Object struct {
	Name      string
	Transform transform.Transform
	Material  *material.Material
	Visible   bool

	mesh    *mesh.Data
	opts    Options
	viewer  Viewer
	state   State
	dev     gfx.Device
	binding *material.Binding
	buffers gfx.Buffers
	log     *zap.Logger
}

// New creates an unloaded, visible object at the origin with the default material.
func New(name string, data *mesh.Data, viewer Viewer, opts Options) *Object {
	return &Object{
		Name:      name,
		Transform: transform.New(),
		Material:  material.Default(),
		Visible:   true,
		mesh:      data,
		opts:      opts,
		viewer:    viewer,
		log:       logger.Named("geometry").With(zap.String("object", name)),
	}
}

// State returns the lifecycle stage.
func (o *Object) State() State { return o.state }

// Mesh returns the object's mesh data.
func (o *Object) Mesh() *mesh.Data { return o.mesh }

// Binding returns the resolved parameter table, or nil before Load.
func (o *Object) Binding() *material.Binding { return o.binding }

// Load derives mesh attributes, creates fallback textures, uploads buffers and
// resolves program against the material slots. On error the object stays unloaded,
// holds no GPU resources and its mesh data is unchanged.
func (o *Object) Load(dev gfx.Device, program gfx.Program) error {
	switch o.state {
	case Loaded:
		return ErrAlreadyLoaded
	case Disposed:
		return ErrDisposed
	}
	if program == nil {
		return fmt.Errorf("load %s: no program", o.Name)
	}

	derived, err := o.derive()
	if err != nil {
		return fmt.Errorf("load %s: %w", o.Name, err)
	}
	if err := o.Material.EnsureFallbacks(dev); err != nil {
		return fmt.Errorf("load %s: %w", o.Name, err)
	}
	buffers, err := upload(dev, derived)
	if err != nil {
		o.Material.Release(dev)
		return fmt.Errorf("load %s: %w", o.Name, err)
	}

	o.commit(derived)
	o.dev = dev
	o.buffers = buffers
	o.binding = material.Resolve(program)
	o.state = Loaded

	o.log.Info("loaded",
		zap.Int("vertices", o.mesh.VertexCount()),
		zap.Int("triangles", o.mesh.TriangleCount()),
		zap.Int("declared_slots", len(o.binding.Declared())))
	return nil
}

// Rebuild re-derives attributes from the current mesh data and replaces the
// uploaded buffers. Vertices may have been added or removed since Load. The
// previous buffers and derived attributes are kept if anything fails.
func (o *Object) Rebuild() error {
	switch o.state {
	case Unloaded:
		return ErrNotLoaded
	case Disposed:
		return ErrDisposed
	}
	derived, err := o.derive()
	if err != nil {
		return fmt.Errorf("rebuild %s: %w", o.Name, err)
	}
	buffers, err := upload(o.dev, derived)
	if err != nil {
		return fmt.Errorf("rebuild %s: %w", o.Name, err)
	}
	o.commit(derived)
	o.dev.DeleteBuffers(o.buffers)
	o.buffers = buffers
	return nil
}

// derive returns a validated copy of the mesh with the automatic attributes
// recomputed. Attributes about to be recomputed are dropped first, so stale
// lengths from before an edit do not fail validation.
func (o *Object) derive() (*mesh.Data, error) {
	if o.mesh == nil {
		return nil, fmt.Errorf("no mesh data: %w", mesh.ErrMalformed)
	}
	d := o.mesh.Clone()
	if o.opts.AutoNormals {
		d.Normals = nil
	}
	if o.opts.AutoTangents {
		d.Tangents = nil
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if o.opts.AutoNormals {
		if err := d.ComputeNormals(); err != nil {
			return nil, err
		}
	}
	if o.opts.AutoTangents {
		if err := d.ComputeTangents(o.opts.Tangents); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// commit stores the derived attributes in the object's own mesh.
func (o *Object) commit(derived *mesh.Data) {
	o.mesh.Normals = derived.Normals
	o.mesh.Tangents = derived.Tangents
}

func upload(dev gfx.Device, data *mesh.Data) (gfx.Buffers, error) {
	vertices, layout := data.Interleave()
	b, err := dev.NewBuffers(vertices, layout, data.Indices)
	if err != nil {
		return gfx.Buffers{}, fmt.Errorf("upload buffers: %w", err)
	}
	return b, nil
}

// Draw binds the object's semantic state and issues one indexed draw.
// A hidden object draws nothing and returns nil.
func (o *Object) Draw(frame Frame) error {
	switch o.state {
	case Unloaded:
		return ErrNotLoaded
	case Disposed:
		return ErrDisposed
	}
	if !o.Visible {
		return nil
	}

	snap, err := o.viewer.Snapshot()
	if err != nil {
		return fmt.Errorf("draw %s: %w", o.Name, err)
	}
	o.binding.Apply(material.Values{
		World:          o.Transform.World(),
		View:           snap.View,
		Projection:     snap.Projection,
		ViewInverse:    snap.ViewInverse,
		CameraPosition: snap.Position,
		Time:           frame.Time,
		Material:       o.Material,
	})
	o.dev.DrawIndexed(o.buffers, frame.State)
	return nil
}

// Dispose releases the buffers and fallback textures. It is safe to call more than once.
func (o *Object) Dispose() {
	if o.state == Loaded {
		o.dev.DeleteBuffers(o.buffers)
		o.Material.Release(o.dev)
		o.buffers = gfx.Buffers{}
		o.binding = nil
		o.log.Debug("disposed")
	}
	o.state = Disposed
}
