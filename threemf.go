package meshsplit

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// A 3MF file is an OPC zip holding a model XML part plus the package
// bookkeeping that points readers at it.
const (
	tmfModelNS   = "http://schemas.microsoft.com/3dmanufacturing/core/2015/02"
	tmfModelPath = "3D/3dmodel.model"

	tmfContentTypes = `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
 <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
 <Default Extension="model" ContentType="application/vnd.ms-package.3dmanufacturing-3dmodel+xml"/>
</Types>`

	tmfRels = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
 <Relationship Target="/3D/3dmodel.model" Id="rel0" Type="http://schemas.microsoft.com/3dmanufacturing/2013/01/3dmodel"/>
</Relationships>`

	tmfIdentityTransform = "1 0 0 0 1 0 0 0 1 0 0 0"

	tmfMaterialsID = 1
)

type tmfModel struct {
	XMLName   xml.Name     `xml:"model"`
	Xmlns     string       `xml:"xmlns,attr"`
	Unit      string       `xml:"unit,attr"`
	Resources tmfResources `xml:"resources"`
	Build     tmfBuild     `xml:"build"`
}

type tmfResources struct {
	Materials tmfBaseMaterials `xml:"basematerials"`
	Objects   []tmfObject      `xml:"object"`
}

type tmfBaseMaterials struct {
	ID    int       `xml:"id,attr"`
	Bases []tmfBase `xml:"base"`
}

type tmfBase struct {
	Name         string `xml:"name,attr"`
	DisplayColor string `xml:"displaycolor,attr"`
}

type tmfObject struct {
	ID     int     `xml:"id,attr"`
	Type   string  `xml:"type,attr"`
	Name   string  `xml:"name,attr"`
	PID    int     `xml:"pid,attr"`
	PIndex int     `xml:"pindex,attr"`
	Mesh   tmfMesh `xml:"mesh"`
}

type tmfMesh struct {
	Vertices  tmfVertices  `xml:"vertices"`
	Triangles tmfTriangles `xml:"triangles"`
}

type tmfVertices struct {
	Vertex []tmfVertex `xml:"vertex"`
}

type tmfVertex struct {
	X float32 `xml:"x,attr"`
	Y float32 `xml:"y,attr"`
	Z float32 `xml:"z,attr"`
}

type tmfTriangles struct {
	Triangle []tmfTriangle `xml:"triangle"`
}

type tmfTriangle struct {
	V1 uint32 `xml:"v1,attr"`
	V2 uint32 `xml:"v2,attr"`
	V3 uint32 `xml:"v3,attr"`
}

type tmfBuild struct {
	Items []tmfItem `xml:"item"`
}

type tmfItem struct {
	ObjectID  int    `xml:"objectid,attr"`
	Transform string `xml:"transform,attr"`
}

// build3MFModel assembles the model document for the given sub-meshes.
//
// The base material table holds one entry per part, in the palette order
// the parts already carry, so object k is bound to material k (1-based;
// pindex in the XML counts from 0). Object names derive from the output
// base name and the part color. Every object's geometry is self contained:
// its triangles reference only its own vertex list.
func build3MFModel(parts []*SubMesh, palette Palette, name string) (*tmfModel, error) {
	if len(parts) == 0 {
		return nil, errors.New("no sub-meshes to export, check color matching and tolerance settings")
	}

	doc := &tmfModel{
		Xmlns: tmfModelNS,
		Unit:  "millimeter",
	}
	doc.Resources.Materials.ID = tmfMaterialsID

	for i, sub := range parts {
		if len(sub.Faces) == 0 {
			return nil, fmt.Errorf("sub-mesh %q has no faces", sub.Color)
		}
		if err := sub.Validate(); err != nil {
			return nil, fmt.Errorf("sub-mesh %q: %w", sub.Color, err)
		}

		ci := palette.Index(sub.Color)
		if ci < 0 {
			return nil, fmt.Errorf("sub-mesh color %q not present in palette", sub.Color)
		}
		rgba := palette[ci].RGBA()
		doc.Resources.Materials.Bases = append(doc.Resources.Materials.Bases, tmfBase{
			Name:         sub.Color,
			DisplayColor: fmt.Sprintf("#%02X%02X%02X%02X", rgba[0], rgba[1], rgba[2], rgba[3]),
		})

		obj := tmfObject{
			ID:     i + 2, // id 1 is the material table
			Type:   "model",
			Name:   name + "_" + sub.Color,
			PID:    tmfMaterialsID,
			PIndex: i,
		}
		obj.Mesh.Vertices.Vertex = make([]tmfVertex, len(sub.Vertices))
		for vi, v := range sub.Vertices {
			obj.Mesh.Vertices.Vertex[vi] = tmfVertex{X: v[0], Y: v[1], Z: v[2]}
		}
		obj.Mesh.Triangles.Triangle = make([]tmfTriangle, len(sub.Faces))
		for fi, f := range sub.Faces {
			if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
				return nil, fmt.Errorf("sub-mesh %q face %d is degenerate", sub.Color, fi)
			}
			obj.Mesh.Triangles.Triangle[fi] = tmfTriangle{V1: f[0], V2: f[1], V3: f[2]}
		}
		doc.Resources.Objects = append(doc.Resources.Objects, obj)
		doc.Build.Items = append(doc.Build.Items, tmfItem{
			ObjectID:  obj.ID,
			Transform: tmfIdentityTransform,
		})
	}
	return doc, nil
}

// Write3MF writes all sub-meshes into one multi-object 3MF container at
// path. The whole document is assembled and encoded before the file is
// created, so a failed build never leaves a partial or empty artifact
// behind.
func Write3MF(parts []*SubMesh, palette Palette, path string) error {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc, err := build3MFModel(parts, palette, stem)
	if err != nil {
		return err
	}
	body, err := xml.MarshalIndent(doc, "", " ")
	if err != nil {
		return err
	}

	fl, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	zw := zip.NewWriter(fl)

	entries := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(tmfContentTypes)},
		{"_rels/.rels", []byte(tmfRels)},
		{tmfModelPath, append([]byte(xml.Header), body...)},
	}
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err == nil {
			_, err = w.Write(e.data)
		}
		if err != nil {
			zw.Close()
			fl.Close()
			os.Remove(path)
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := zw.Close(); err != nil {
		fl.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return fl.Close()
}
