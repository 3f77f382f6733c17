package mesh

// Attribute identifies a vertex attribute and its shader input location.
type Attribute int

// Attribute locations, in interleaving order.
const (
	AttrPosition Attribute = iota
	AttrNormal
	AttrTexCoord
	AttrColor
	AttrTangent
)

var attributeNames = [...]string{
	AttrPosition: "position",
	AttrNormal:   "normal",
	AttrTexCoord: "texcoord",
	AttrColor:    "color",
	AttrTangent:  "tangent",
}

func (a Attribute) String() string {
	if a < 0 || int(a) >= len(attributeNames) {
		return "unknown"
	}
	return attributeNames[a]
}

// AttributeLayout places one attribute inside an interleaved vertex.
type AttributeLayout struct {
	Attribute  Attribute
	Components int // float32 count
	Offset     int // in float32s from the start of the vertex
}

// Layout describes an interleaved vertex buffer.
type Layout struct {
	Attributes []AttributeLayout
	Stride     int // float32s per vertex
}

// StrideBytes returns the vertex size in bytes.
func (l Layout) StrideBytes() int { return l.Stride * 4 }

// Has reports whether the layout contains attribute a.
func (l Layout) Has(a Attribute) bool {
	for _, al := range l.Attributes {
		if al.Attribute == a {
			return true
		}
	}
	return false
}

// Layout returns the interleaved layout for the attributes present in d.
func (d *Data) Layout() Layout {
	var l Layout
	add := func(a Attribute, components int, present bool) {
		if !present {
			return
		}
		l.Attributes = append(l.Attributes, AttributeLayout{Attribute: a, Components: components, Offset: l.Stride})
		l.Stride += components
	}
	add(AttrPosition, 3, len(d.Positions) > 0)
	add(AttrNormal, 3, len(d.Normals) > 0)
	add(AttrTexCoord, 2, len(d.TexCoords) > 0)
	add(AttrColor, 4, len(d.Colors) > 0)
	add(AttrTangent, 3, len(d.Tangents) > 0)
	return l
}

// Interleave packs the vertex attributes into a single float32 slice ready for upload.
// Colors are stored as normalized RGBA floats. The mesh must be valid.
func (d *Data) Interleave() ([]float32, Layout) {
	l := d.Layout()
	out := make([]float32, 0, l.Stride*len(d.Positions))
	for i := range d.Positions {
		for _, al := range l.Attributes {
			switch al.Attribute {
			case AttrPosition:
				p := d.Positions[i]
				out = append(out, p.X, p.Y, p.Z)
			case AttrNormal:
				n := d.Normals[i]
				out = append(out, n.X, n.Y, n.Z)
			case AttrTexCoord:
				uv := d.TexCoords[i]
				out = append(out, uv.X, uv.Y)
			case AttrColor:
				c := d.Colors[i].Vec4()
				out = append(out, c[:]...)
			case AttrTangent:
				t := d.Tangents[i]
				out = append(out, t.X, t.Y, t.Z)
			}
		}
	}
	return out, l
}
