package meshsplit

import (
	"fmt"
	"math"

	dvec3 "github.com/flywave/go3d/float64/vec3"
	"github.com/flywave/go3d/vec3"
)

// Mesh is a triangle surface. Faces index into Vertices; Colors, when
// present, runs parallel to Vertices with one RGBA value per vertex.
type Mesh struct {
	Vertices []vec3.T
	Faces    [][3]uint32
	Colors   [][4]byte
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// HasColors reports whether every vertex carries a color.
func (m *Mesh) HasColors() bool {
	return len(m.Vertices) > 0 && len(m.Colors) == len(m.Vertices)
}

// Validate checks that every face references an existing vertex and that
// the color array, if any, matches the vertex count.
func (m *Mesh) Validate() error {
	n := uint32(len(m.Vertices))
	for i, f := range m.Faces {
		for _, v := range f {
			if v >= n {
				return fmt.Errorf("face %d references vertex %d, mesh has only %d vertices", i, v, n)
			}
		}
	}
	if len(m.Colors) != 0 && len(m.Colors) != len(m.Vertices) {
		return fmt.Errorf("vertex color count %d does not match vertex count %d", len(m.Colors), len(m.Vertices))
	}
	return nil
}

func (m *Mesh) GetBoundbox() *[6]float64 {
	minX := math.MaxFloat64
	minY := math.MaxFloat64
	minZ := math.MaxFloat64
	maxX := -math.MaxFloat64
	maxY := -math.MaxFloat64
	maxZ := -math.MaxFloat64
	for i := range m.Vertices {
		minX = math.Min(minX, float64(m.Vertices[i][0]))
		minY = math.Min(minY, float64(m.Vertices[i][1]))
		minZ = math.Min(minZ, float64(m.Vertices[i][2]))

		maxX = math.Max(maxX, float64(m.Vertices[i][0]))
		maxY = math.Max(maxY, float64(m.Vertices[i][1]))
		maxZ = math.Max(maxZ, float64(m.Vertices[i][2]))
	}
	return &[6]float64{minX, minY, minZ, maxX, maxY, maxZ}
}

// ComputeBBox returns the axis aligned bounding box of the mesh.
func (m *Mesh) ComputeBBox() dvec3.Box {
	if len(m.Vertices) == 0 {
		return dvec3.Box{}
	}
	bx := m.GetBoundbox()
	return dvec3.Box{
		Min: dvec3.T{bx[0], bx[1], bx[2]},
		Max: dvec3.T{bx[3], bx[4], bx[5]},
	}
}

// SubMesh is an independently indexed mesh fragment holding the faces of a
// single color group. Its vertex indices are local; it never aliases the
// arrays of the mesh it was split from.
type SubMesh struct {
	Mesh
	Color string
}
