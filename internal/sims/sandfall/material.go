package sandfall

import "fmt"

// Material is the content of a single grid cell. The set is closed: every
// cell holds exactly one of the values below.
type Material uint8

const (
	Empty Material = iota
	Sand
	Lava
	Glass
	// Actor marks the cell occupied by the player. It is derived from the
	// actor's position each tick and never read back as a source of truth.
	Actor

	materialCount
)

var materialNames = [materialCount]string{
	Empty: "empty",
	Sand:  "sand",
	Lava:  "lava",
	Glass: "glass",
	Actor: "actor",
}

func (m Material) String() string {
	if !m.Valid() {
		return fmt.Sprintf("material(%d)", uint8(m))
	}
	return materialNames[m]
}

// Valid reports whether m is one of the defined materials.
func (m Material) Valid() bool { return m < materialCount }

// Mobile reports whether gravity relocates the material.
func (m Material) Mobile() bool { return m == Sand || m == Lava }

// Solid reports whether the actor can stand on the material.
func (m Material) Solid() bool { return m != Empty && m != Lava }

// heated returns what m turns into when lava touches it.
func heated(m Material) (Material, bool) {
	switch m {
	case Sand:
		return Glass, true
	case Empty, Lava, Glass, Actor:
		return m, false
	default:
		panic(fmt.Sprintf("sandfall: invalid material %d", uint8(m)))
	}
}

// ParseMaterial converts a material name to its enumerant.
func ParseMaterial(name string) (Material, error) {
	for m, n := range materialNames {
		if n == name {
			return Material(m), nil
		}
	}
	return Empty, fmt.Errorf("sandfall: unknown material %q", name)
}
