package meshsplit

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/flywave/go3d/vec3"

	"github.com/qmuntal/gltf"
)

func u32ptr(v uint32) *uint32 {
	return &v
}

// colorTriangleDoc builds a single-triangle document with a COLOR_0
// attribute: float32 positions, uint16 indices, ubyte RGBA colors.
func colorTriangleDoc() *gltf.Document {
	buf := bytes.NewBuffer(nil)
	positions := []vec3.T{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	binary.Write(buf, binary.LittleEndian, positions) // 36 bytes
	binary.Write(buf, binary.LittleEndian, []uint16{0, 1, 2})
	binary.Write(buf, binary.LittleEndian, [][4]byte{
		{210, 30, 45, 255}, {210, 30, 45, 255}, {210, 30, 45, 255},
	})
	data := buf.Bytes()

	return &gltf.Document{
		Buffers: []gltf.Buffer{{ByteLength: uint32(len(data)), Data: data}},
		BufferViews: []gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 36},
			{Buffer: 0, ByteOffset: 36, ByteLength: 6},
			{Buffer: 0, ByteOffset: 42, ByteLength: 12},
		},
		Accessors: []gltf.Accessor{
			{BufferView: u32ptr(0), ComponentType: gltf.Float, Count: 3, Type: gltf.Vec3},
			{BufferView: u32ptr(1), ComponentType: gltf.UnsignedShort, Count: 3, Type: gltf.Scalar},
			{BufferView: u32ptr(2), ComponentType: gltf.UnsignedByte, Count: 3, Type: gltf.Vec4},
		},
		Meshes: []gltf.Mesh{{
			Primitives: []gltf.Primitive{{
				Attributes: map[string]uint32{"POSITION": 0, "COLOR_0": 2},
				Indices:    u32ptr(1),
			}},
		}},
	}
}

func TestMeshFromDocument(t *testing.T) {
	m, err := meshFromDocument(colorTriangleDoc())
	if err != nil {
		t.Fatalf("meshFromDocument failed: %v", err)
	}
	if m.VertexCount() != 3 || m.FaceCount() != 1 {
		t.Fatalf("Expected 3 vertices and 1 face, got %d and %d", m.VertexCount(), m.FaceCount())
	}
	if m.Vertices[1] != (vec3.T{1, 0, 0}) {
		t.Errorf("Expected vertex [1 0 0], got %v", m.Vertices[1])
	}
	if m.Faces[0] != [3]uint32{0, 1, 2} {
		t.Errorf("Expected face [0 1 2], got %v", m.Faces[0])
	}
	if !m.HasColors() {
		t.Fatal("Expected vertex colors")
	}
	if m.Colors[0] != [4]byte{210, 30, 45, 255} {
		t.Errorf("Expected red vertex color, got %v", m.Colors[0])
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Loaded mesh invalid: %v", err)
	}
}

// Two primitives merge into one mesh with rebased face indices.
func TestMeshFromDocumentMergesPrimitives(t *testing.T) {
	doc := colorTriangleDoc()
	doc.Meshes[0].Primitives = append(doc.Meshes[0].Primitives, gltf.Primitive{
		Attributes: map[string]uint32{"POSITION": 0, "COLOR_0": 2},
		Indices:    u32ptr(1),
	})

	m, err := meshFromDocument(doc)
	if err != nil {
		t.Fatalf("meshFromDocument failed: %v", err)
	}
	if m.VertexCount() != 6 || m.FaceCount() != 2 {
		t.Fatalf("Expected 6 vertices and 2 faces, got %d and %d", m.VertexCount(), m.FaceCount())
	}
	if m.Faces[1] != [3]uint32{3, 4, 5} {
		t.Errorf("Expected rebased face [3 4 5], got %v", m.Faces[1])
	}
	if len(m.Colors) != 6 {
		t.Errorf("Expected 6 vertex colors, got %d", len(m.Colors))
	}
}

// Without COLOR_0 and without a material the loader falls back to opaque
// white; with a base color factor it uses that color for every vertex.
func TestMeshFromDocumentColorFallbacks(t *testing.T) {
	doc := colorTriangleDoc()
	delete(doc.Meshes[0].Primitives[0].Attributes, "COLOR_0")

	m, err := meshFromDocument(doc)
	if err != nil {
		t.Fatalf("meshFromDocument failed: %v", err)
	}
	if m.Colors[0] != [4]byte{255, 255, 255, 255} {
		t.Errorf("Expected opaque white fallback, got %v", m.Colors[0])
	}

	doc = colorTriangleDoc()
	delete(doc.Meshes[0].Primitives[0].Attributes, "COLOR_0")
	doc.Materials = []gltf.Material{{
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &gltf.RGBA{R: 1, G: 0, B: 0, A: 1},
		},
	}}
	doc.Meshes[0].Primitives[0].Material = u32ptr(0)

	m, err = meshFromDocument(doc)
	if err != nil {
		t.Fatalf("meshFromDocument failed: %v", err)
	}
	if m.Colors[2] != [4]byte{255, 0, 0, 255} {
		t.Errorf("Expected base color factor red, got %v", m.Colors[2])
	}
}

func TestMeshFromDocumentEmpty(t *testing.T) {
	if _, err := meshFromDocument(&gltf.Document{}); err == nil {
		t.Error("Expected error for document without geometry")
	}
}

func TestTextureSample(t *testing.T) {
	// 2x2 checkerboard: red, green / blue, white
	tex := &Texture{
		Width:  2,
		Height: 2,
		Data: []byte{
			255, 0, 0, 255, 0, 255, 0, 255,
			0, 0, 255, 255, 255, 255, 255, 255,
		},
	}

	tests := []struct {
		name string
		u, v float32
		want [4]byte
	}{
		{"top left", 0, 0, [4]byte{255, 0, 0, 255}},
		{"top right", 0.75, 0, [4]byte{0, 255, 0, 255}},
		{"bottom left", 0.25, 0.75, [4]byte{0, 0, 255, 255}},
		{"wraps past one", 1.25, 0.25, [4]byte{255, 0, 0, 255}},
		{"wraps negative", -0.25, 0.75, [4]byte{255, 255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tex.Sample(tt.u, tt.v); got != tt.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
}
