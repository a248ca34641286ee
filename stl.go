package meshsplit

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/flywave/go3d/vec3"
)

func toLittleByteOrder(v interface{}) []byte {
	var buf []byte
	b := bytes.NewBuffer(buf)
	e := binary.Write(b, binary.LittleEndian, v)
	if e != nil {
		return nil
	}
	return b.Bytes()
}

func writeLittleByte(wt io.Writer, v interface{}) {
	buf := toLittleByteOrder(v)
	if buf != nil {
		wt.Write(buf)
	}
}

// faceNormal computes the unit normal of a triangle, or the zero vector
// when the triangle has no area.
func faceNormal(pt1, pt2, pt3 *vec3.T) vec3.T {
	sub1 := vec3.Sub(pt3, pt2)
	sub2 := vec3.Sub(pt1, pt2)

	cro := vec3.Cross(&sub1, &sub2)
	l := cro.Length()
	if l == 0 {
		return vec3.T{}
	}
	return *cro.Scale(1 / l)
}

// WriteSTL writes one sub-mesh as a binary STL document: an 80 byte
// header, the triangle count, then one 50 byte record per face with its
// computed normal.
func WriteSTL(wt io.Writer, sub *SubMesh) error {
	if len(sub.Faces) == 0 {
		return fmt.Errorf("sub-mesh %q has no faces", sub.Color)
	}
	if err := sub.Validate(); err != nil {
		return fmt.Errorf("sub-mesh %q: %w", sub.Color, err)
	}

	var header [80]byte
	copy(header[:], "meshsplit "+sub.Color)
	writeLittleByte(wt, header)
	writeLittleByte(wt, uint32(len(sub.Faces)))
	for _, f := range sub.Faces {
		n := faceNormal(&sub.Vertices[f[0]], &sub.Vertices[f[1]], &sub.Vertices[f[2]])
		writeLittleByte(wt, &n)
		writeLittleByte(wt, &sub.Vertices[f[0]])
		writeLittleByte(wt, &sub.Vertices[f[1]])
		writeLittleByte(wt, &sub.Vertices[f[2]])
		writeLittleByte(wt, uint16(0))
	}
	return nil
}

// WriteSTLParts writes each sub-mesh to its own file named
// <prefix>_<color>.stl and returns the generated paths. Every file is a
// complete standalone mesh; the color survives only in the file name.
func WriteSTLParts(parts []*SubMesh, prefix string) ([]string, error) {
	if len(parts) == 0 {
		return nil, errors.New("no sub-meshes to export, check color matching and tolerance settings")
	}
	paths := make([]string, 0, len(parts))
	for _, sub := range parts {
		buf := bytes.NewBuffer(nil)
		if err := WriteSTL(buf, sub); err != nil {
			return nil, err
		}
		path := fmt.Sprintf("%s_%s%s", prefix, sub.Color, STLExt)
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
