// Package obj writes meshes as Wavefront OBJ files with an optional MTL
// material referencing a DDS texture.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"text/template"

	"github.com/JMcKiern/warhawk-reversing/pkg/ngp"
)

// MaterialName is the single material every textured model uses.
const MaterialName = "Textured"

var funcs = template.FuncMap{
	"num": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	},
}

var objTemplate = template.Must(template.New("obj").Funcs(funcs).Parse(
	`{{if .MaterialLib}}mtllib {{.MaterialLib}}
usemtl {{.Material}}
{{end}}o {{.Name}}
{{range .Mesh.Vertices}}v {{num (index . 0)}} {{num (index . 1)}} {{num (index . 2)}}
{{end}}{{range .Mesh.UVs}}vt {{num (index . 0)}} {{num (index . 1)}}
{{end}}{{range .Mesh.Faces}}f {{if $.UVs}}{{index . 0}}/{{index . 0}} {{index . 1}}/{{index . 1}} {{index . 2}}/{{index . 2}}{{else}}{{index . 0}} {{index . 1}} {{index . 2}}{{end}}
{{end}}`))

var mtlTemplate = template.Must(template.New("mtl").Parse(
	`newmtl {{.Material}}
Kd 1.0 1.0 1.0
map_Kd {{.Texture}}
`))

type objData struct {
	Name        string
	MaterialLib string
	Material    string
	Mesh        *ngp.Mesh
	UVs         bool
}

// WriteOBJ writes mesh as an object called name. If materialLib is not empty
// the object uses MaterialName from that library. Faces reference texture
// coordinates only when the mesh has them.
func WriteOBJ(w io.Writer, name, materialLib string, mesh *ngp.Mesh) error {
	bw := bufio.NewWriter(w)
	data := objData{
		Name:        name,
		MaterialLib: materialLib,
		Material:    MaterialName,
		Mesh:        mesh,
		UVs:         len(mesh.UVs) > 0,
	}
	if err := objTemplate.Execute(bw, data); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return bw.Flush()
}

// WriteMTL writes a material library with MaterialName mapped to texture.
func WriteMTL(w io.Writer, texture string) error {
	data := struct {
		Material string
		Texture  string
	}{MaterialName, texture}
	if err := mtlTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("write mtl: %w", err)
	}
	return nil
}
