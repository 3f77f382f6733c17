// Package material binds a geometry object's semantic state to whatever subset of
// named parameters a shader program declares.
package material

import "fmt"

// Slot is a semantic shader parameter.
type Slot int

// Semantic slots, in resolution order. Texture units follow this order.
const (
	WorldViewProjection Slot = iota
	World
	View
	Projection
	TextureMap
	NormalMap
	OcclusionMap
	SpecularMap
	HeightMap
	LightDirection
	CameraPosition
	UVMultiplier
	AmbientColor
	AmbientPower
	EnvironmentMap
	ViewInverse
	Time

	slotCount
)

// slotNames are the parameter names programs declare. They must match exactly.
var slotNames = [slotCount]string{
	WorldViewProjection: "WorldViewProjection",
	World:               "World",
	View:                "View",
	Projection:          "Projection",
	TextureMap:          "textureMap",
	NormalMap:           "normalMap",
	OcclusionMap:        "occlusionMap",
	SpecularMap:         "specularMap",
	HeightMap:           "heightMap",
	LightDirection:      "lightDirection",
	CameraPosition:      "CameraPosition",
	UVMultiplier:        "uvMultiplier",
	AmbientColor:        "AmbientColor",
	AmbientPower:        "AmbientPower",
	EnvironmentMap:      "EnvironmentMap",
	ViewInverse:         "ViewInverse",
	Time:                "Time",
}

// String returns the parameter name of s.
func (s Slot) String() string {
	if s < 0 || s >= slotCount {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotNames[s]
}

// Slots returns every slot in declaration order.
func Slots() []Slot {
	out := make([]Slot, slotCount)
	for i := range out {
		out[i] = Slot(i)
	}
	return out
}

// ParseSlot returns the slot whose parameter name is name.
func ParseSlot(name string) (Slot, bool) {
	for i, n := range slotNames {
		if n == name {
			return Slot(i), true
		}
	}
	return -1, false
}

// isTexture reports whether s binds a sampler.
func (s Slot) isTexture() bool {
	switch s {
	case TextureMap, NormalMap, OcclusionMap, SpecularMap, HeightMap, EnvironmentMap:
		return true
	}
	return false
}
