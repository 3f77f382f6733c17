package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/shaderbasics/pkg/math"
)

func TestComputeNormalsSingleTriangle(t *testing.T) {
	d := &Data{
		Positions: []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		Indices:   []uint32{0, 1, 2},
	}
	require.NoError(t, d.ComputeNormals())

	for i, n := range d.Normals {
		assert.True(t, n.ApproxEqual(math.Vec3{X: 0, Y: 0, Z: 1}, 1e-6), "vertex %d: %v", i, n)
	}
}

func TestComputeNormalsCube(t *testing.T) {
	d := Cube()
	require.Equal(t, 24, d.VertexCount())
	require.Equal(t, 12, d.TriangleCount())
	require.NoError(t, d.ComputeNormals())

	for i, n := range d.Normals {
		assert.InDelta(t, 1, n.Length(), 1e-5, "vertex %d", i)
		// Normals point away from the centre.
		assert.Greater(t, n.Dot(d.Positions[i]), float32(0), "vertex %d", i)
	}
	// Face order matches cubeFaces.
	for f, face := range cubeFaces {
		for v := 0; v < 4; v++ {
			got := d.Normals[f*4+v]
			assert.True(t, got.ApproxEqual(face[0], 1e-6), "face %d vertex %d: %v", f, v, got)
		}
	}
}

func TestComputeNormalsAreaWeighted(t *testing.T) {
	// Two triangles share vertex 0: a large one in the XY plane (+Z) and a small
	// one in the XZ plane (-Y). The shared normal leans toward the larger face.
	d := &Data{
		Positions: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 4, Y: 0, Z: 0},
			{X: 0, Y: 4, Z: 0},
			{X: 0, Y: 0, Z: 1},
			{X: 1, Y: 0, Z: 0},
		},
		Indices: []uint32{0, 1, 2, 0, 4, 3},
	}
	require.NoError(t, d.ComputeNormals())

	shared := d.Normals[0]
	assert.InDelta(t, 1, shared.Length(), 1e-6)
	assert.Greater(t, shared.Z, -shared.Y*10)
	want := math.Vec3{X: 0, Y: -1, Z: 16}.Normalize()
	assert.True(t, shared.ApproxEqual(want, 1e-5), "got %v, want %v", shared, want)
}

func TestComputeNormalsUnreferencedVertexStaysZero(t *testing.T) {
	d := &Data{
		Positions: []math.Vec3{{X: 0}, {X: 1}, {Y: 1}, {Z: 5}},
		Indices:   []uint32{0, 1, 2},
	}
	require.NoError(t, d.ComputeNormals())
	assert.Equal(t, math.Vec3{}, d.Normals[3])
}

func TestComputeTangents(t *testing.T) {
	for name, d := range map[string]*Data{"triangle": Triangle(), "quad": Quad(), "cube": Cube()} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, d.ComputeNormals())
			require.NoError(t, d.ComputeTangents(TangentOptions{}))
			require.Len(t, d.Tangents, d.VertexCount())

			for i, tan := range d.Tangents {
				assert.InDelta(t, 1, tan.Length(), 1e-5, "vertex %d", i)
				assert.InDelta(t, 0, tan.Dot(d.Normals[i]), 1e-5, "vertex %d tangent not perpendicular", i)
			}
		})
	}
}

func TestComputeTangentsRawKeepsSum(t *testing.T) {
	d := Quad()
	require.NoError(t, d.ComputeTangents(TangentOptions{Raw: true}))

	// Vertices 0 and 2 belong to both triangles, 1 and 3 to one.
	assert.True(t, d.Tangents[0].ApproxEqual(math.Vec3{X: 2}, 1e-6), "got %v", d.Tangents[0])
	assert.True(t, d.Tangents[1].ApproxEqual(math.Vec3{X: 1}, 1e-6), "got %v", d.Tangents[1])
	assert.True(t, d.Tangents[2].ApproxEqual(math.Vec3{X: 2}, 1e-6), "got %v", d.Tangents[2])
	assert.True(t, d.Tangents[3].ApproxEqual(math.Vec3{X: 1}, 1e-6), "got %v", d.Tangents[3])
}

func TestComputeTangentsSkipsDegenerateUV(t *testing.T) {
	d := Triangle()
	for i := range d.TexCoords {
		d.TexCoords[i] = math.Vec2{X: 0.5, Y: 0.5}
	}
	require.NoError(t, d.ComputeTangents(TangentOptions{}))
	for i, tan := range d.Tangents {
		assert.Equal(t, math.Vec3{}, tan, "vertex %d", i)
	}
}

func TestComputeTangentsRequiresTexCoords(t *testing.T) {
	d := Triangle()
	d.TexCoords = nil
	err := d.ComputeTangents(TangentOptions{})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(d *Data)
		attribute string
	}{
		{"no positions", func(d *Data) { d.Positions = nil }, "positions"},
		{"no indices", func(d *Data) { d.Indices = nil }, "indices"},
		{"partial triangle", func(d *Data) { d.Indices = append(d.Indices, 0) }, "indices"},
		{"index out of range", func(d *Data) { d.Indices[4] = 99 }, "indices"},
		{"short colors", func(d *Data) { d.Colors = d.Colors[:2] }, "colors"},
		{"long texcoords", func(d *Data) { d.TexCoords = append(d.TexCoords, math.Vec2{}) }, "texcoords"},
		{"short normals", func(d *Data) { d.Normals = make([]math.Vec3, 1) }, "normals"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Quad()
			tt.mutate(d)

			err := d.Validate()
			require.ErrorIs(t, err, ErrMalformed)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.attribute, verr.Attribute)
		})
	}

	assert.NoError(t, Quad().Validate())
}

func TestValidateReportsIndexPosition(t *testing.T) {
	d := Quad()
	d.Indices[4] = 99

	var verr *ValidationError
	require.ErrorAs(t, d.Validate(), &verr)
	assert.Equal(t, 4, verr.Index)
	assert.Contains(t, verr.Error(), "indices[4]")
}

func TestComputeNormalsRejectsMalformed(t *testing.T) {
	d := Triangle()
	d.Indices = []uint32{0, 1, 7}
	assert.ErrorIs(t, d.ComputeNormals(), ErrMalformed)
	assert.Nil(t, d.Normals)
}

func TestDeriveReplacesStaleAttributes(t *testing.T) {
	d := Quad()
	require.NoError(t, d.ComputeNormals())
	require.NoError(t, d.ComputeTangents(TangentOptions{}))

	// Grow the mesh by one triangle; the derived arrays are now one short.
	d.Positions = append(d.Positions, math.Vec3{X: 2}, math.Vec3{X: 3}, math.Vec3{X: 2, Y: 1})
	d.TexCoords = append(d.TexCoords, math.Vec2{}, math.Vec2{X: 1}, math.Vec2{Y: 1})
	d.Colors = append(d.Colors, math.Red, math.Green, math.Blue)
	d.Indices = append(d.Indices, 4, 5, 6)
	require.ErrorIs(t, d.Validate(), ErrMalformed)

	// Each derivation skips only the array it replaces.
	assert.ErrorIs(t, d.ComputeNormals(), ErrMalformed)
	d.Tangents = nil
	require.NoError(t, d.ComputeNormals())
	require.NoError(t, d.ComputeTangents(TangentOptions{}))

	assert.Len(t, d.Normals, 7)
	assert.Len(t, d.Tangents, 7)
	assert.True(t, d.Normals[6].ApproxEqual(math.Vec3{Z: 1}, 1e-6), "got %v", d.Normals[6])
	assert.NoError(t, d.Validate())
}

func TestBounds(t *testing.T) {
	b := Cube().Bounds()
	assert.Equal(t, math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}, b.Min)
	assert.Equal(t, math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, b.Max)
}

func TestShapesWindCounterClockwise(t *testing.T) {
	// Every triangle's geometric normal faces away from the origin side it sits on
	// (+Z for the flat shapes).
	for name, d := range map[string]*Data{"triangle": Triangle(), "quad": Quad()} {
		for i := 0; i < len(d.Indices); i += 3 {
			a, b, c := d.Positions[d.Indices[i]], d.Positions[d.Indices[i+1]], d.Positions[d.Indices[i+2]]
			n := b.Sub(a).Cross(c.Sub(a))
			assert.Greater(t, n.Z, float32(0), "%s triangle %d", name, i/3)
		}
	}
}

func TestInterleave(t *testing.T) {
	d := Triangle()
	require.NoError(t, d.ComputeNormals())

	data, layout := d.Interleave()
	assert.Equal(t, 3+3+2+4, layout.Stride)
	assert.Equal(t, 48, layout.StrideBytes())
	assert.True(t, layout.Has(AttrColor))
	assert.False(t, layout.Has(AttrTangent))
	require.Len(t, data, layout.Stride*3)

	// Second vertex: position, normal, texcoord, color (green).
	v := data[layout.Stride : 2*layout.Stride]
	assert.Equal(t, []float32{-0.5, -0.5, 0}, v[0:3])
	assert.InDelta(t, 1, v[5], 1e-6)
	assert.Equal(t, []float32{0, 0}, v[6:8])
	assert.InDelta(t, 128.0/255.0, v[9], 1e-6)

	offsets := map[Attribute]int{}
	for _, al := range layout.Attributes {
		offsets[al.Attribute] = al.Offset
	}
	assert.Equal(t, map[Attribute]int{AttrPosition: 0, AttrNormal: 3, AttrTexCoord: 6, AttrColor: 8}, offsets)
}

func TestClone(t *testing.T) {
	d := Quad()
	c := d.Clone()
	c.Positions[0].X = 42
	assert.NotEqual(t, d.Positions[0], c.Positions[0])
	assert.Equal(t, d.Indices, c.Indices)
}
