package mesh

import "github.com/Faultbox/shaderbasics/pkg/math"

// Triangle returns a unit triangle in the XY plane facing +Z.
func Triangle() *Data {
	return &Data{
		Positions: []math.Vec3{
			{X: 0, Y: 0.5, Z: 0},
			{X: -0.5, Y: -0.5, Z: 0},
			{X: 0.5, Y: -0.5, Z: 0},
		},
		TexCoords: []math.Vec2{
			{X: 0.5, Y: 1},
			{X: 0, Y: 0},
			{X: 1, Y: 0},
		},
		Colors:  []math.Color{math.Red, math.Green, math.Blue},
		Indices: []uint32{0, 1, 2},
	}
}

// Quad returns a unit quad in the XY plane facing +Z.
func Quad() *Data {
	return &Data{
		Positions: []math.Vec3{
			{X: -0.5, Y: -0.5, Z: 0},
			{X: 0.5, Y: -0.5, Z: 0},
			{X: 0.5, Y: 0.5, Z: 0},
			{X: -0.5, Y: 0.5, Z: 0},
		},
		TexCoords: quadTexCoords(),
		Colors:    []math.Color{math.Red, math.Blue, math.Green, math.Yellow},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}

// cubeFaces lists outward normal, u axis and v axis per face, with u x v = normal.
var cubeFaces = [6][3]math.Vec3{
	{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},   // front
	{{X: 0, Y: 0, Z: -1}, {X: -1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}, // back
	{{X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: -1}, {X: 0, Y: 1, Z: 0}},  // right
	{{X: -1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 0}},  // left
	{{X: 0, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: -1}},  // top
	{{X: 0, Y: -1, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}},  // bottom
}

// Cube returns a unit cube centred on the origin: 24 vertices, 12 triangles.
// Each face has its own vertices so face normals stay sharp.
func Cube() *Data {
	d := &Data{
		Positions: make([]math.Vec3, 0, 24),
		TexCoords: make([]math.Vec2, 0, 24),
		Colors:    make([]math.Color, 0, 24),
		Indices:   make([]uint32, 0, 36),
	}
	for _, face := range cubeFaces {
		n, u, v := face[0].Scale(0.5), face[1].Scale(0.5), face[2].Scale(0.5)
		base := uint32(len(d.Positions))
		d.Positions = append(d.Positions,
			n.Sub(u).Sub(v),
			n.Add(u).Sub(v),
			n.Add(u).Add(v),
			n.Sub(u).Add(v),
		)
		d.TexCoords = append(d.TexCoords, quadTexCoords()...)
		d.Colors = append(d.Colors, math.Red, math.Blue, math.Green, math.Yellow)
		d.Indices = append(d.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return d
}

func quadTexCoords() []math.Vec2 {
	return []math.Vec2{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
	}
}
