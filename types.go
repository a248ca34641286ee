package meshsplit

// File extensions of the two supported output renderers.
const (
	STLExt = ".stl"
	TMFExt = ".3mf"
)

// DefaultTolerance is the color matching tolerance applied when the caller
// does not supply one. Distances are in the units of ColorDistance.
const DefaultTolerance float64 = 15

// UnmatchedFace records a face whose nearest palette color was farther away
// than the tolerance. The face is still assigned to that color; the record
// exists for diagnostic reporting only.
type UnmatchedFace struct {
	Face     int
	Distance float64
}

// ColorCount is the number of faces classified into one palette color.
type ColorCount struct {
	Color string
	Faces int
}

// PartStat describes one sub-mesh after sanitization. Dropped counts the
// degenerate faces removed from it.
type PartStat struct {
	Color    string
	Vertices int
	Faces    int
	Dropped  int
}

// Report collects the diagnostics of one pipeline run. Nothing in here is
// an error condition.
type Report struct {
	Counts    []ColorCount
	Unmatched []UnmatchedFace
	Parts     []PartStat
}
