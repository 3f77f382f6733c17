package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/shaderbasics/pkg/math"
)

// degenerateUVArea is the smallest texture-space cross term a triangle may have
// and still contribute a tangent.
const degenerateUVArea = 1e-8

// TangentOptions controls tangent derivation.
type TangentOptions struct {
	// Raw keeps the per-vertex sum of face tangents without renormalizing it.
	// Shaders written against that layout normalize in the pixel stage.
	Raw bool
}

// ComputeNormals replaces Normals with smooth, area-weighted vertex normals.
//
// Each triangle contributes its unnormalized face normal (B-A)x(C-A) to its three
// vertices, so larger faces weigh more at shared vertices. Vertices that no triangle
// references keep a zero normal. Existing normals are ignored, whatever their length.
func (d *Data) ComputeNormals() error {
	if err := d.validate("normals"); err != nil {
		return err
	}

	normals := make([]math.Vec3, len(d.Positions))
	for i := 0; i+2 < len(d.Indices); i += 3 {
		ia, ib, ic := d.Indices[i], d.Indices[i+1], d.Indices[i+2]
		a, b, c := d.Positions[ia], d.Positions[ib], d.Positions[ic]

		face := b.Sub(a).Cross(c.Sub(a))
		normals[ia] = normals[ia].Add(face)
		normals[ib] = normals[ib].Add(face)
		normals[ic] = normals[ic].Add(face)
	}

	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	d.Normals = normals
	return nil
}

// ComputeTangents replaces Tangents with per-vertex tangents derived from positions
// and texture coordinates.
//
// For a triangle (v1, v2, v3) with texcoords (w1, w2, w3) the face direction is
// (v2-v1)*(w3-w1).y - (v3-v1)*(w2-w1).y, normalized, and summed into each vertex.
// Triangles with no texture-space area are skipped. Existing tangents are ignored.
func (d *Data) ComputeTangents(opts TangentOptions) error {
	if err := d.validate("tangents"); err != nil {
		return err
	}
	if len(d.TexCoords) == 0 {
		return &ValidationError{Attribute: "texcoords", Index: -1, Reason: "required for tangents"}
	}

	tangents := make([]math.Vec3, len(d.Positions))
	for i := 0; i+2 < len(d.Indices); i += 3 {
		i1, i2, i3 := d.Indices[i], d.Indices[i+1], d.Indices[i+2]

		edge1 := d.Positions[i2].Sub(d.Positions[i1])
		edge2 := d.Positions[i3].Sub(d.Positions[i1])
		tex1 := d.TexCoords[i2].Sub(d.TexCoords[i1])
		tex2 := d.TexCoords[i3].Sub(d.TexCoords[i1])

		if math32.Abs(tex1.Cross(tex2)) < degenerateUVArea {
			continue
		}

		dir := edge1.Scale(tex2.Y).Sub(edge2.Scale(tex1.Y)).Normalize()
		tangents[i1] = tangents[i1].Add(dir)
		tangents[i2] = tangents[i2].Add(dir)
		tangents[i3] = tangents[i3].Add(dir)
	}

	if !opts.Raw {
		for i := range tangents {
			tangents[i] = tangents[i].Normalize()
		}
	}
	d.Tangents = tangents
	return nil
}
