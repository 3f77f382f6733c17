// Package mesh holds vertex attribute data for hand-built geometry and derives
// normals and tangents from it.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/shaderbasics/pkg/math"
)

// ErrMalformed is wrapped by every validation failure.
var ErrMalformed = errors.New("malformed mesh")

// ValidationError describes which attribute or index made a mesh unusable.
type ValidationError struct {
	Attribute string
	Index     int
	Reason    string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%v: %s[%d]: %s", ErrMalformed, e.Attribute, e.Index, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", ErrMalformed, e.Attribute, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrMalformed }

// Data is a triangle list with parallel per-vertex attribute arrays.
// Every non-empty attribute array has one entry per position. Indices come in
// triples with counter-clockwise front faces.
type Data struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	Tangents  []math.Vec3
	TexCoords []math.Vec2
	Colors    []math.Color
	Indices   []uint32
}

// Bounds holds the axis-aligned bounding box of the positions.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// VertexCount returns the number of vertices.
func (d *Data) VertexCount() int { return len(d.Positions) }

// TriangleCount returns the number of indexed triangles.
func (d *Data) TriangleCount() int { return len(d.Indices) / 3 }

// Validate checks index range, triangle list length and attribute array lengths.
func (d *Data) Validate() error {
	return d.validate("")
}

// validate is Validate with the length check of one attribute left out, for
// derivations that are about to replace that attribute.
func (d *Data) validate(replaced string) error {
	n := len(d.Positions)
	if n == 0 {
		return &ValidationError{Attribute: "positions", Index: -1, Reason: "no vertices"}
	}
	if len(d.Indices) == 0 {
		return &ValidationError{Attribute: "indices", Index: -1, Reason: "no triangles"}
	}
	if len(d.Indices)%3 != 0 {
		return &ValidationError{
			Attribute: "indices",
			Index:     -1,
			Reason:    fmt.Sprintf("length %d is not a multiple of 3", len(d.Indices)),
		}
	}
	for i, idx := range d.Indices {
		if int(idx) >= n {
			return &ValidationError{
				Attribute: "indices",
				Index:     i,
				Reason:    fmt.Sprintf("vertex %d out of range (%d vertices)", idx, n),
			}
		}
	}

	lengths := []struct {
		name string
		n    int
	}{
		{"normals", len(d.Normals)},
		{"tangents", len(d.Tangents)},
		{"texcoords", len(d.TexCoords)},
		{"colors", len(d.Colors)},
	}
	for _, l := range lengths {
		if l.name == replaced {
			continue
		}
		if l.n != 0 && l.n != n {
			return &ValidationError{
				Attribute: l.name,
				Index:     -1,
				Reason:    fmt.Sprintf("length %d, want %d", l.n, n),
			}
		}
	}
	return nil
}

// Bounds returns the bounding box of all positions.
func (d *Data) Bounds() Bounds {
	if len(d.Positions) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: d.Positions[0], Max: d.Positions[0]}
	for _, p := range d.Positions[1:] {
		updateBounds(&b, p)
	}
	return b
}

// Clone returns a deep copy.
func (d *Data) Clone() *Data {
	return &Data{
		Positions: append([]math.Vec3(nil), d.Positions...),
		Normals:   append([]math.Vec3(nil), d.Normals...),
		Tangents:  append([]math.Vec3(nil), d.Tangents...),
		TexCoords: append([]math.Vec2(nil), d.TexCoords...),
		Colors:    append([]math.Color(nil), d.Colors...),
		Indices:   append([]uint32(nil), d.Indices...),
	}
}

func updateBounds(b *Bounds, p math.Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}
