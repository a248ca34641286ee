package meshsplit

// Sanitize removes degenerate faces from the sub-mesh and prunes vertices
// that no surviving face references, compacting indices in place. It
// returns the number of faces dropped.
//
// A face is degenerate when its three vertex indices are not pairwise
// distinct; the 3MF writer rejects such triangles outright, so they are
// filtered before any serialization. Surviving faces and vertices keep
// their relative order, which makes the operation idempotent.
func Sanitize(sub *SubMesh) int {
	kept := sub.Faces[:0]
	for _, f := range sub.Faces {
		if f[0] != f[1] && f[1] != f[2] && f[0] != f[2] {
			kept = append(kept, f)
		}
	}
	dropped := len(sub.Faces) - len(kept)
	sub.Faces = kept

	used := make([]bool, len(sub.Vertices))
	for _, f := range sub.Faces {
		used[f[0]] = true
		used[f[1]] = true
		used[f[2]] = true
	}

	// Compact forward; the destination index never passes the source index,
	// so reusing the backing array is safe.
	remap := make([]uint32, len(sub.Vertices))
	verts := sub.Vertices[:0]
	for vi, u := range used {
		if u {
			remap[vi] = uint32(len(verts))
			verts = append(verts, sub.Vertices[vi])
		}
	}
	sub.Vertices = verts
	for i := range sub.Faces {
		f := &sub.Faces[i]
		f[0], f[1], f[2] = remap[f[0]], remap[f[1]], remap[f[2]]
	}
	return dropped
}
