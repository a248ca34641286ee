package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/ardatechnologies/meshsplit"
	"github.com/ardatechnologies/meshsplit/utils"
)

var (
	// Flags
	source      = flag.String("in", "", "Source GLB file")
	output      = flag.String("out", "", "Output 3MF file, or file prefix in STL mode")
	format      = flag.String("format", "3mf", "Output format: 3mf (single multi-part container) or stl (one file per color)")
	tolerance   = flag.Float64("tolerance", meshsplit.DefaultTolerance, "Color matching tolerance")
	paletteFile = flag.String("palette", "", "JSON palette file (default: built-in astronaut palette)")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if len(*source) == 0 || len(*output) == 0 {
		log.Fatal("Usage: meshsplit -in model.glb -out parts [-format stl|3mf] [-tolerance 15]")
	}
	if *format != "stl" && *format != "3mf" {
		log.Fatalf("Unknown format %q, expected stl or 3mf", *format)
	}

	palette := meshsplit.DefaultPalette()
	if len(*paletteFile) > 0 {
		var err error
		palette, err = meshsplit.LoadPaletteFile(*paletteFile)
		if err != nil {
			log.Fatalf("Unable to load palette: %v", err)
		}
	}

	total := time.Now()
	s := utils.NewSpinner()

	s.Start("Loading GLB file...")
	start := time.Now()
	mesh, err := meshsplit.LoadGLB(*source)
	s.Stop()
	if err != nil {
		log.Fatalf("Unable to load %s: %v", *source, err)
	}
	bx := mesh.GetBoundbox()
	fmt.Printf("Loaded %s: %d vertices, %d faces, %.1fx%.1fx%.1f (%s)\n",
		filepath.Base(*source), mesh.VertexCount(), mesh.FaceCount(),
		bx[3]-bx[0], bx[4]-bx[1], bx[5]-bx[2], utils.FormatTime(time.Since(start)))

	s.Start("Grouping faces by color...")
	start = time.Now()
	splitter := &meshsplit.Splitter{Palette: palette, Tolerance: *tolerance}
	parts, report, err := splitter.Split(mesh)
	s.Stop()
	if err != nil {
		log.Fatalf("Unable to split mesh: %v", err)
	}
	fmt.Printf("Face grouping complete (%s)\n", utils.FormatTime(time.Since(start)))
	for _, c := range report.Counts {
		fmt.Printf("  %s: %d faces\n", c.Color, c.Faces)
	}
	if n := len(report.Unmatched); n > 0 {
		fmt.Printf("%s  %d faces assigned to closest color (outside tolerance)%s\n",
			utils.WarningColor, n, utils.DefaultColor)
	}
	for _, p := range report.Parts {
		line := fmt.Sprintf("  %s: %d vertices, %d faces", p.Color, p.Vertices, p.Faces)
		if p.Dropped > 0 {
			line += fmt.Sprintf(" (%d degenerate faces removed)", p.Dropped)
		}
		fmt.Println(line)
	}

	s.Start("Exporting parts...")
	start = time.Now()
	switch *format {
	case "stl":
		prefix := strings.TrimSuffix(*output, meshsplit.STLExt)
		paths, err := meshsplit.WriteSTLParts(parts, prefix)
		s.Stop()
		if err != nil {
			log.Fatalf("Unable to export STL parts: %v", err)
		}
		for _, p := range paths {
			fmt.Printf("  Exported %s\n", p)
		}
		fmt.Printf("Saved %d STL files with prefix %s (%s)\n", len(paths), prefix, utils.FormatTime(time.Since(start)))
	case "3mf":
		out := *output
		if filepath.Ext(out) != meshsplit.TMFExt {
			out += meshsplit.TMFExt
		}
		err := meshsplit.Write3MF(parts, palette, out)
		s.Stop()
		if err != nil {
			log.Fatalf("Unable to export 3MF: %v", err)
		}
		fmt.Printf("Saved %s with %d objects (%s)\n", out, len(parts), utils.FormatTime(time.Since(start)))
	}

	fmt.Printf("%sDone in %s%s\n", utils.SuccessColor, utils.FormatTime(time.Since(total)), utils.DefaultColor)
}
