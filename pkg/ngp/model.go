package ngp

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/JMcKiern/warhawk-reversing/pkg/binio"
	"github.com/JMcKiern/warhawk-reversing/pkg/format"
)

// Model record constants
const (
	ModelMagic       = 1
	ModelGuard       = 0x3C000000
	ModelGuardOffset = 0x14
	ModelBaseSize    = 0x2C

	LinkerStart = 0x38
	LinkerSize  = 0x0C

	// UVLinkerTag marks the linker describing texture coordinates.
	UVLinkerTag = 0x00080003
)

// Linker describes one per-vertex data stream of a model.
type Linker struct {
	Tag        uint32
	Stride     uint8
	InNGP      bool
	DataOffset uint32
}

// ModelHeader is the fixed part of a model record.
type ModelHeader struct {
	Offset         int
	Magic          uint32
	FaceIndexCount uint32
	VertexCount    uint16
	LinkerCount    uint8
	FacesOffset    uint32
	VertexOffset   uint32
	Linkers        []Linker
}

// ModelSize returns the length of a model record with n linkers.
func ModelSize(n uint8) int {
	return ModelBaseSize + int(n)*LinkerSize
}

// Size returns the length of the record.
func (h *ModelHeader) Size() int {
	return ModelSize(h.LinkerCount)
}

// UVLinker returns the first linker tagged as texture coordinates.
func (h *ModelHeader) UVLinker() (Linker, bool) {
	for _, l := range h.Linkers {
		if l.Tag == UVLinkerTag {
			return l, true
		}
	}
	return Linker{}, false
}

// ReadModelHeader decodes the model record at offset.
func ReadModelHeader(data []byte, offset int) (*ModelHeader, error) {
	r := binio.NewReader(data)

	magic, err := r.U32(offset)
	if err != nil {
		return nil, format.Wrap(format.Truncated, offset, err)
	}
	if magic != ModelMagic {
		return nil, format.Errorf(format.BadRecordMagic, offset, "expected %d, got 0x%08x", ModelMagic, magic)
	}

	n, err := r.U8(offset + 0x26)
	if err != nil {
		return nil, format.Wrap(format.Truncated, offset+0x26, err)
	}
	size := ModelSize(n)
	if err := r.Check(offset, size); err != nil {
		return nil, format.Wrap(format.Truncated, offset, err)
	}

	h := &ModelHeader{Offset: offset, Magic: magic, LinkerCount: n}
	h.FaceIndexCount, _ = r.U32(offset + 0x1C)
	h.VertexCount, _ = r.U16(offset + 0x24)
	h.FacesOffset, _ = r.U32(offset + 0x28)
	// 0x34 overlaps the first linker slot, so it can lie past a record
	// without linkers.
	if h.VertexOffset, err = r.U32(offset + 0x34); err != nil {
		return nil, format.Wrap(format.Truncated, offset+0x34, err)
	}

	for off := LinkerStart; off+LinkerSize <= size; off += LinkerSize {
		l := offset + off
		tag, _ := r.U32(l)
		stride, _ := r.U8(l + 0x04)
		inNGP, _ := r.U8(l + 0x06)
		dataOffset, _ := r.U32(l + 0x08)
		h.Linkers = append(h.Linkers, Linker{
			Tag:        tag,
			Stride:     stride,
			InNGP:      inNGP == 0x01,
			DataOffset: dataOffset,
		})
	}

	return h, nil
}

// Mesh is a decoded model.
type Mesh struct {
	Offset   int
	Vertices []mgl64.Vec3
	// Faces hold 1-based vertex indices.
	Faces [][3]uint32
	// UVs is empty when the model has no texture coordinate linker.
	UVs []mgl64.Vec2
	// TextureOffset is the descriptor offset, valid when HasTexture is set.
	TextureOffset int
	HasTexture    bool
}

// Bounds returns the component-wise minimum and maximum vertex.
func (m *Mesh) Bounds() (lo, hi mgl64.Vec3) {
	if len(m.Vertices) == 0 {
		return lo, hi
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = math.Min(lo[i], v[i])
			hi[i] = math.Max(hi[i], v[i])
		}
	}
	return lo, hi
}

// String returns a human-readable representation.
func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh{offset: 0x%x, vertices: %d, faces: %d, uvs: %d}",
		m.Offset, len(m.Vertices), len(m.Faces), len(m.UVs))
}

// ModelName returns the output name of the model at offset.
func ModelName(stem string, offset int) string {
	return fmt.Sprintf("%s_0x%x", stem, offset)
}

// NormalizeVertex maps a stored coordinate to [0, 2).
func NormalizeVertex(v int16) float64 {
	return (float64(v) + 0x8000) / 0x8000
}

// NormalizeUV maps a stored texture coordinate component.
func NormalizeUV(v uint16) float64 {
	return math.Pow(float64(v)/0x3800, 10) / 2
}

// ParseModel decodes the model record at offset in src.NGP, including its
// texture coordinates and the offset of its texture descriptor.
func ParseModel(src Source, offset int) (*Mesh, error) {
	h, err := ReadModelHeader(src.NGP, offset)
	if err != nil {
		return nil, fmt.Errorf("read model header: %w", err)
	}

	mesh := &Mesh{Offset: offset}

	if mesh.Faces, err = readFaces(src.NGP, h); err != nil {
		return nil, fmt.Errorf("read faces: %w", err)
	}
	if mesh.Vertices, err = readVertices(src.NGP, h); err != nil {
		return nil, fmt.Errorf("read vertices: %w", err)
	}
	if l, ok := h.UVLinker(); ok {
		if mesh.UVs, err = readUVs(src.Payload(l.InNGP), l, int(h.VertexCount)); err != nil {
			return nil, fmt.Errorf("read uvs from %s: %w", PayloadName(l.InNGP), err)
		}
	}

	mesh.TextureOffset, mesh.HasTexture, err = TextureOffset(src.NGP, offset)
	if err != nil {
		return nil, fmt.Errorf("find texture: %w", err)
	}

	return mesh, nil
}

func readFaces(data []byte, h *ModelHeader) ([][3]uint32, error) {
	r := binio.NewReader(data)
	count := int(h.FaceIndexCount / 3)
	base := int(h.FacesOffset)
	if err := r.Check(base, count*6); err != nil {
		return nil, format.Wrap(format.Truncated, base, err)
	}

	faces := make([][3]uint32, count)
	for i := range faces {
		for j := 0; j < 3; j++ {
			idx, _ := r.U16(base + i*6 + j*2)
			faces[i][j] = uint32(idx) + 1
		}
	}
	return faces, nil
}

func readVertices(data []byte, h *ModelHeader) ([]mgl64.Vec3, error) {
	r := binio.NewReader(data)
	count := int(h.VertexCount)
	base := int(h.VertexOffset)
	if err := r.Check(base, count*6); err != nil {
		return nil, format.Wrap(format.Truncated, base, err)
	}

	vertices := make([]mgl64.Vec3, count)
	for i := range vertices {
		for j := 0; j < 3; j++ {
			v, _ := r.I16(base + i*6 + j*2)
			vertices[i][j] = NormalizeVertex(v)
		}
	}
	return vertices, nil
}

func readUVs(data []byte, l Linker, count int) ([]mgl64.Vec2, error) {
	r := binio.NewReader(data)
	uvs := make([]mgl64.Vec2, count)
	for i := range uvs {
		off := int(l.DataOffset) + i*int(l.Stride)
		if err := r.Check(off, 4); err != nil {
			return nil, format.Wrap(format.Truncated, off, err)
		}
		u, _ := r.U16(off)
		v, _ := r.U16(off + 2)
		// Texture rows run bottom-up relative to the model.
		uvs[i] = mgl64.Vec2{NormalizeUV(u), 1 - NormalizeUV(v)}
	}
	return uvs, nil
}
