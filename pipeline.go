package meshsplit

// Splitter runs the partitioning pipeline: classify every face against the
// palette, split the mesh into per-color sub-meshes, and sanitize each part
// for export. The phases run strictly in that order; each one consumes its
// input and produces an independent value.
type Splitter struct {
	Palette   Palette
	Tolerance float64
}

// NewSplitter returns a Splitter over the given palette with the default
// tolerance.
func NewSplitter(palette Palette) *Splitter {
	return &Splitter{Palette: palette, Tolerance: DefaultTolerance}
}

// Split partitions the mesh into sanitized per-color sub-meshes, in palette
// order. Parts emptied by the degeneracy filter are excluded from the
// result but still show up in the report.
//
// A malformed mesh is the only error here. Faces matched outside the
// tolerance and faces lost to degeneracy filtering are diagnostics in the
// returned Report, never errors.
func (s *Splitter) Split(m *Mesh) ([]*SubMesh, *Report, error) {
	labels, unmatched, err := Classify(m, s.Palette, s.Tolerance)
	if err != nil {
		return nil, nil, err
	}

	report := &Report{Unmatched: unmatched}
	counts := make([]int, len(s.Palette))
	for _, l := range labels {
		counts[l]++
	}
	report.Counts = make([]ColorCount, len(s.Palette))
	for i, c := range s.Palette {
		report.Counts[i] = ColorCount{Color: c.Name, Faces: counts[i]}
	}

	parts := Partition(m, labels, s.Palette)
	clean := make([]*SubMesh, 0, len(parts))
	for _, sub := range parts {
		dropped := Sanitize(sub)
		report.Parts = append(report.Parts, PartStat{
			Color:    sub.Color,
			Vertices: len(sub.Vertices),
			Faces:    len(sub.Faces),
			Dropped:  dropped,
		})
		if len(sub.Faces) == 0 {
			continue
		}
		clean = append(clean, sub)
	}
	return clean, report, nil
}
