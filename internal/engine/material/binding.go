package material

import (
	"go.uber.org/zap"

	"github.com/Faultbox/shaderbasics/internal/engine/gfx"
	"github.com/Faultbox/shaderbasics/internal/logger"
	"github.com/Faultbox/shaderbasics/pkg/math"
)

// Values is the full semantic state offered to a program for one draw.
type Values struct {
	World          math.Mat4
	View           math.Mat4
	Projection     math.Mat4
	ViewInverse    math.Mat4
	CameraPosition math.Vec3
	Time           float32
	Material       *Material
}

// Binding is a program's resolved parameter table. Parameter existence is static
// for a linked program, so names are looked up once in Resolve and Apply works
// by slot index only.
type Binding struct {
	program  gfx.Program
	location [slotCount]gfx.Location
	present  [slotCount]bool
	unit     [slotCount]int
}

// Resolve builds the binding table for p. Texture units are assigned in slot order
// to the samplers p declares.
func Resolve(p gfx.Program) *Binding {
	b := &Binding{program: p}
	declared, units := 0, 0
	for s := Slot(0); s < slotCount; s++ {
		loc, ok := p.Locate(slotNames[s])
		if !ok {
			continue
		}
		b.location[s] = loc
		b.present[s] = true
		declared++
		if s.isTexture() {
			b.unit[s] = units
			units++
		}
	}
	logger.Named("material").Debug("binding resolved",
		zap.Int("declared", declared),
		zap.Int("absent", int(slotCount)-declared),
		zap.Int("texture_units", units))
	return b
}

// Program returns the program the binding was resolved for.
func (b *Binding) Program() gfx.Program { return b.program }

// Declares reports whether the program declares slot s.
func (b *Binding) Declares(s Slot) bool {
	return s >= 0 && s < slotCount && b.present[s]
}

// Declared returns the declared slots in slot order.
func (b *Binding) Declared() []Slot {
	var out []Slot
	for s := Slot(0); s < slotCount; s++ {
		if b.present[s] {
			out = append(out, s)
		}
	}
	return out
}

// Unit returns the texture unit assigned to a sampler slot.
func (b *Binding) Unit(s Slot) (int, bool) {
	if !b.Declares(s) || !s.isTexture() {
		return 0, false
	}
	return b.unit[s], true
}

// Apply makes the program current and writes every declared slot from v.
// Undeclared slots are skipped silently. v.Material must not be nil.
func (b *Binding) Apply(v Values) {
	p := b.program
	p.Use()

	m := v.Material
	for s := Slot(0); s < slotCount; s++ {
		if !b.present[s] {
			continue
		}
		loc := b.location[s]
		switch s {
		case WorldViewProjection:
			p.SetMat4(loc, v.Projection.Mul(v.View).Mul(v.World))
		case World:
			p.SetMat4(loc, v.World)
		case View:
			p.SetMat4(loc, v.View)
		case Projection:
			p.SetMat4(loc, v.Projection)
		case ViewInverse:
			p.SetMat4(loc, v.ViewInverse)
		case CameraPosition:
			p.SetVec3(loc, v.CameraPosition)
		case Time:
			p.SetFloat(loc, v.Time)
		case LightDirection:
			p.SetVec3(loc, m.LightDirection)
		case AmbientColor:
			p.SetVec4(loc, m.AmbientColor.Vec4())
		case AmbientPower:
			p.SetFloat(loc, m.AmbientPower)
		case UVMultiplier:
			p.SetFloat(loc, m.UVMultiplier)
		default:
			p.SetTexture(loc, b.unit[s], m.texture(s))
		}
	}
}
