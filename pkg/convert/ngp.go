package convert

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/JMcKiern/warhawk-reversing/pkg/ngp"
	"github.com/JMcKiern/warhawk-reversing/pkg/obj"
)

// Models extracts every model found in <stem>.ngp as <stem>_0x<offset>.obj.
// Textured models also get a .mtl and a .dds. A texture that fails to
// convert is reported as a warning and the model is written untextured.
func Models(stem string, opts ...Option) []Result {
	o := newOptions(opts)
	stem = ngp.Stem(stem)

	src, err := ngp.Open(stem, o.read)
	if err != nil {
		res := Result{Input: stem}
		res.fail(err)
		return []Result{res}
	}

	locs := ngp.FindModels(src.NGP)
	results := make([]Result, 0, len(locs))
	for _, loc := range locs {
		results = append(results, o.model(src, stem, loc.Offset))
	}
	return results
}

func (o *options) model(src ngp.Source, stem string, offset int) Result {
	res := Result{Input: stem, Offset: hexOffset(offset)}
	o.printf("Extracting model located at 0x%x", offset)
	defer o.done(&res)

	mesh, err := ngp.ParseModel(src, offset)
	if err != nil {
		res.fail(err)
		return res
	}

	res.Mesh = meshInfo(mesh)

	name := ngp.ModelName(filepath.Base(stem), offset)
	dir := filepath.Dir(stem)

	// Materials name the plain files; compressed outputs are unwrapped
	// before use.
	var mtlName string
	if mesh.HasTexture {
		tex := o.modelTexture(src, mesh.TextureOffset, o.outputPath(dir, name+ExtDDS))
		res.Warnings = append(res.Warnings, tex.Warnings...)
		if tex.OK() {
			res.Outputs = append(res.Outputs, tex.Outputs...)

			var mtl bytes.Buffer
			if err := obj.WriteMTL(&mtl, name+ExtDDS); err != nil {
				res.fail(err)
				return res
			}
			written, err := o.write(o.outputPath(dir, name+ExtMTL), mtl.Bytes())
			if err != nil {
				res.fail(err)
				return res
			}
			res.Outputs = append(res.Outputs, written)
			mtlName = name + ExtMTL
		} else {
			res.Warnings = append(res.Warnings, fmt.Sprintf("texture at 0x%x: %s", mesh.TextureOffset, tex.Error))
		}
	}

	var buf bytes.Buffer
	if err := obj.WriteOBJ(&buf, name, mtlName, mesh); err != nil {
		res.fail(err)
		return res
	}
	written, err := o.write(o.outputPath(dir, name+ExtOBJ), buf.Bytes())
	if err != nil {
		res.fail(err)
		return res
	}
	res.Outputs = append(res.Outputs, written)
	return res
}

func (o *options) modelTexture(src ngp.Source, descOffset int, ddsPath string) Result {
	var res Result
	data, err := ngp.LocateAt(src, descOffset)
	if err != nil {
		res.fail(err)
		return res
	}
	o.decodeRTT(&res, data, ddsPath)
	return res
}

// TextureRange extracts the descriptor rows in [start, end) of <stem>.ngp
// as <stem>_0x<offset>.rtt, converting each to DDS as well when WithDDS is
// set.
func TextureRange(stem string, start, end int, opts ...Option) []Result {
	o := newOptions(opts)
	stem = ngp.Stem(stem)

	src, err := ngp.Open(stem, o.read)
	if err != nil {
		res := Result{Input: stem}
		res.fail(err)
		return []Result{res}
	}

	offsets := ngp.ScanDescriptors(src.NGP, start, end)
	results := make([]Result, 0, len(offsets))
	for _, off := range offsets {
		results = append(results, o.texture(src, stem, off))
	}
	return results
}

func (o *options) texture(src ngp.Source, stem string, offset int) Result {
	res := Result{Input: stem, Offset: hexOffset(offset)}
	o.printf("Extracting texture described at 0x%x", offset)
	defer o.done(&res)

	data, err := ngp.Locate(ngp.DescriptorAt(src.NGP, offset), src)
	if err != nil {
		res.fail(err)
		return res
	}

	name := ngp.ModelName(filepath.Base(stem), offset)
	dir := filepath.Dir(stem)

	written, err := o.write(o.outputPath(dir, name+ExtRTT), data)
	if err != nil {
		res.fail(err)
		return res
	}
	res.Outputs = append(res.Outputs, written)

	if o.dds {
		o.decodeRTT(&res, data, o.outputPath(dir, name+ExtDDS))
	}
	return res
}
