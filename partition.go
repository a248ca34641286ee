package meshsplit

// Partition splits the mesh into one sub-mesh per palette color that
// received at least one face. labels holds the palette index of every
// face, as produced by Classify.
//
// Sub-meshes come out in palette order regardless of label order, so two
// runs over the same input produce the same sequence. Each sub-mesh owns
// fresh vertex and face arrays in a local index space; retained vertices
// keep their relative order from the source mesh. Source vertex colors are
// not carried over, the part is tagged with its single color name instead.
func Partition(m *Mesh, labels []int, palette Palette) []*SubMesh {
	parts := make([]*SubMesh, 0, len(palette))
	for ci := range palette {
		used := make([]bool, len(m.Vertices))
		faces := 0
		for fi, f := range m.Faces {
			if labels[fi] != ci {
				continue
			}
			faces++
			used[f[0]] = true
			used[f[1]] = true
			used[f[2]] = true
		}
		if faces == 0 {
			continue
		}

		sub := &SubMesh{Color: palette[ci].Name}
		remap := make([]uint32, len(m.Vertices))
		for vi, u := range used {
			if u {
				remap[vi] = uint32(len(sub.Vertices))
				sub.Vertices = append(sub.Vertices, m.Vertices[vi])
			}
		}
		sub.Faces = make([][3]uint32, 0, faces)
		for fi, f := range m.Faces {
			if labels[fi] != ci {
				continue
			}
			sub.Faces = append(sub.Faces, [3]uint32{remap[f[0]], remap[f[1]], remap[f[2]]})
		}
		parts = append(parts, sub)
	}
	return parts
}
