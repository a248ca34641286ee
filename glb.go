package meshsplit

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/flywave/go3d/vec2"
	"github.com/flywave/go3d/vec3"

	"github.com/qmuntal/gltf"
)

// LoadGLB reads a GLB (or glTF) document and flattens every mesh primitive
// into one colored Mesh, the way a slicer-facing pipeline wants it: a
// single vertex/face soup with per-vertex RGBA colors.
//
// Colors are resolved per primitive in priority order: the COLOR_0
// attribute when present; otherwise the base color texture sampled at each
// vertex's texture coordinate; otherwise the material base color factor;
// otherwise opaque white. The returned mesh therefore always carries
// vertex colors.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return meshFromDocument(doc)
}

func meshFromDocument(doc *gltf.Document) (*Mesh, error) {
	mesh := &Mesh{}
	for mi := range doc.Meshes {
		mh := &doc.Meshes[mi]
		for _, ps := range mh.Primitives {
			base := uint32(len(mesh.Vertices))

			posIdx, ok := ps.Attributes["POSITION"]
			if !ok {
				return nil, errors.New("primitive has no POSITION attribute")
			}
			posAcc := doc.Accessors[posIdx]
			posData, err := accessorBytes(doc, &posAcc)
			if err != nil {
				return nil, err
			}
			bf := bytes.NewBuffer(posData)
			for i := 0; i < int(posAcc.Count); i++ {
				v := vec3.T{}
				if err := binary.Read(bf, binary.LittleEndian, &v); err != nil {
					return nil, fmt.Errorf("read positions: %w", err)
				}
				mesh.Vertices = append(mesh.Vertices, v)
			}

			if ps.Indices != nil {
				indices, err := readIndices(doc, doc.Accessors[*ps.Indices])
				if err != nil {
					return nil, err
				}
				for i := 0; i+2 < len(indices); i += 3 {
					mesh.Faces = append(mesh.Faces, [3]uint32{
						base + indices[i],
						base + indices[i+1],
						base + indices[i+2],
					})
				}
			} else {
				for i := uint32(0); i+2 < posAcc.Count; i += 3 {
					mesh.Faces = append(mesh.Faces, [3]uint32{base + i, base + i + 1, base + i + 2})
				}
			}

			colors, err := primitiveColors(doc, ps.Attributes, ps.Material, int(posAcc.Count))
			if err != nil {
				return nil, err
			}
			mesh.Colors = append(mesh.Colors, colors...)
		}
	}
	if len(mesh.Vertices) == 0 {
		return nil, errors.New("document contains no mesh geometry")
	}
	return mesh, nil
}

// accessorBytes returns the raw little-endian payload of an accessor.
// Accessor data is assumed tightly packed within its buffer view.
func accessorBytes(doc *gltf.Document, acc *gltf.Accessor) ([]byte, error) {
	if acc.BufferView == nil {
		return nil, errors.New("accessor without buffer view is not supported")
	}
	view := doc.BufferViews[*acc.BufferView]
	buff := doc.Buffers[view.Buffer]
	start := view.ByteOffset + acc.ByteOffset
	end := view.ByteOffset + view.ByteLength
	if int(end) > len(buff.Data) || start > end {
		return nil, errors.New("accessor range exceeds buffer size")
	}
	return buff.Data[start:end], nil
}

func readIndices(doc *gltf.Document, acc gltf.Accessor) ([]uint32, error) {
	data, err := accessorBytes(doc, &acc)
	if err != nil {
		return nil, err
	}
	bf := bytes.NewBuffer(data)
	out := make([]uint32, 0, acc.Count)
	for i := 0; i < int(acc.Count); i++ {
		switch acc.ComponentType {
		case gltf.UnsignedByte:
			var v uint8
			if err := binary.Read(bf, binary.LittleEndian, &v); err != nil {
				return nil, fmt.Errorf("read indices: %w", err)
			}
			out = append(out, uint32(v))
		case gltf.UnsignedShort, gltf.Short:
			var v uint16
			if err := binary.Read(bf, binary.LittleEndian, &v); err != nil {
				return nil, fmt.Errorf("read indices: %w", err)
			}
			out = append(out, uint32(v))
		case gltf.UnsignedInt:
			var v uint32
			if err := binary.Read(bf, binary.LittleEndian, &v); err != nil {
				return nil, fmt.Errorf("read indices: %w", err)
			}
			out = append(out, v)
		default:
			return nil, fmt.Errorf("unsupported index component type %d", acc.ComponentType)
		}
	}
	return out, nil
}

// primitiveColors produces one RGBA color per vertex of a primitive.
func primitiveColors(doc *gltf.Document, attrs map[string]uint32, material *uint32, count int) ([][4]byte, error) {
	if idx, ok := attrs["COLOR_0"]; ok {
		return readColors(doc, doc.Accessors[idx])
	}

	if material != nil {
		mt := doc.Materials[*material]
		if mt.PBRMetallicRoughness.BaseColorTexture != nil {
			if uvIdx, ok := attrs["TEXCOORD_0"]; ok {
				tex, err := baseColorTexture(doc, mt.PBRMetallicRoughness.BaseColorTexture.Index)
				if err != nil {
					return nil, err
				}
				uvs, err := readTexCoords(doc, doc.Accessors[uvIdx])
				if err != nil {
					return nil, err
				}
				if len(uvs) != count {
					return nil, fmt.Errorf("texture coordinate count %d does not match vertex count %d", len(uvs), count)
				}
				colors := make([][4]byte, count)
				for i, uv := range uvs {
					colors[i] = tex.Sample(uv[0], uv[1])
				}
				return colors, nil
			}
		}
		if mt.PBRMetallicRoughness.BaseColorFactor != nil {
			f := mt.PBRMetallicRoughness.BaseColorFactor
			c := [4]byte{
				byte(clamp01(f.R)*255 + 0.5),
				byte(clamp01(f.G)*255 + 0.5),
				byte(clamp01(f.B)*255 + 0.5),
				byte(clamp01(f.A)*255 + 0.5),
			}
			return uniformColors(c, count), nil
		}
	}
	return uniformColors([4]byte{255, 255, 255, 255}, count), nil
}

func readColors(doc *gltf.Document, acc gltf.Accessor) ([][4]byte, error) {
	data, err := accessorBytes(doc, &acc)
	if err != nil {
		return nil, err
	}
	comps := 4
	if acc.Type == gltf.Vec3 {
		comps = 3
	} else if acc.Type != gltf.Vec4 {
		return nil, fmt.Errorf("unsupported COLOR_0 accessor type %d", acc.Type)
	}

	bf := bytes.NewBuffer(data)
	out := make([][4]byte, 0, acc.Count)
	for i := 0; i < int(acc.Count); i++ {
		c := [4]byte{0, 0, 0, 255}
		for k := 0; k < comps; k++ {
			switch acc.ComponentType {
			case gltf.UnsignedByte:
				var v uint8
				if err := binary.Read(bf, binary.LittleEndian, &v); err != nil {
					return nil, fmt.Errorf("read colors: %w", err)
				}
				c[k] = v
			case gltf.UnsignedShort:
				var v uint16
				if err := binary.Read(bf, binary.LittleEndian, &v); err != nil {
					return nil, fmt.Errorf("read colors: %w", err)
				}
				c[k] = byte(v >> 8)
			case gltf.Float:
				var v float32
				if err := binary.Read(bf, binary.LittleEndian, &v); err != nil {
					return nil, fmt.Errorf("read colors: %w", err)
				}
				c[k] = byte(clamp01(float64(v))*255 + 0.5)
			default:
				return nil, fmt.Errorf("unsupported COLOR_0 component type %d", acc.ComponentType)
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func readTexCoords(doc *gltf.Document, acc gltf.Accessor) ([]vec2.T, error) {
	if acc.ComponentType != gltf.Float || acc.Type != gltf.Vec2 {
		return nil, errors.New("only float texture coordinates are supported")
	}
	data, err := accessorBytes(doc, &acc)
	if err != nil {
		return nil, err
	}
	bf := bytes.NewBuffer(data)
	out := make([]vec2.T, 0, acc.Count)
	for i := 0; i < int(acc.Count); i++ {
		v := vec2.T{}
		if err := binary.Read(bf, binary.LittleEndian, &v); err != nil {
			return nil, fmt.Errorf("read texture coordinates: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

// baseColorTexture decodes the image behind a texture index. Only images
// embedded in a buffer view are supported, which is how GLB packs them.
func baseColorTexture(doc *gltf.Document, texIdx uint32) (*Texture, error) {
	src := doc.Textures[texIdx].Source
	if src == nil {
		return nil, errors.New("texture has no image source")
	}
	img := doc.Images[*src]
	if img.BufferView == nil {
		return nil, errors.New("external texture images are not supported")
	}
	view := doc.BufferViews[*img.BufferView]
	buffer := doc.Buffers[view.Buffer]
	bt := buffer.Data[view.ByteOffset : view.ByteOffset+view.ByteLength]
	return decodeTexture(img.MimeType, bytes.NewBuffer(bt))
}

func uniformColors(c [4]byte, count int) [][4]byte {
	out := make([][4]byte, count)
	for i := range out {
		out[i] = c
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
