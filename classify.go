package meshsplit

import (
	"errors"
	"fmt"
	"math"
)

// Classify assigns every face of the mesh to its nearest palette color and
// returns one palette index per face.
//
// The observed color of a face is the arithmetic mean of its three vertex
// colors, alpha ignored. A face is always assigned to the nearest palette
// entry, even when that entry is farther away than tolerance; such faces
// are additionally returned in the unmatched list so the caller can report
// low-confidence matches. Ties resolve to the earliest palette entry.
func Classify(m *Mesh, palette Palette, tolerance float64) ([]int, []UnmatchedFace, error) {
	if err := m.Validate(); err != nil {
		return nil, nil, err
	}
	if len(palette) == 0 {
		return nil, nil, errors.New("palette has no colors")
	}
	if tolerance < 0 {
		return nil, nil, fmt.Errorf("negative tolerance %v", tolerance)
	}
	if len(m.Faces) == 0 {
		return []int{}, nil, nil
	}
	if !m.HasColors() {
		return nil, nil, errors.New("mesh has no per-vertex colors")
	}

	labels := make([]int, len(m.Faces))
	var unmatched []UnmatchedFace
	for i, f := range m.Faces {
		var avg [3]float64
		for _, vi := range f {
			c := m.Colors[vi]
			avg[0] += float64(c[0])
			avg[1] += float64(c[1])
			avg[2] += float64(c[2])
		}
		avg[0] /= 3
		avg[1] /= 3
		avg[2] /= 3

		best := 0
		minDist := math.Inf(1)
		for j := range palette {
			if d := ColorDistance(avg, palette[j].RGB); d < minDist {
				minDist = d
				best = j
			}
		}
		labels[i] = best
		if minDist >= tolerance {
			unmatched = append(unmatched, UnmatchedFace{Face: i, Distance: minDist})
		}
	}
	return labels, unmatched, nil
}
