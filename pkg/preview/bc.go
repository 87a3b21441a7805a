package preview

import (
	"fmt"
	"image"
)

// rgb565 expands a packed 5:6:5 color to 8 bits per channel.
func rgb565(c uint16) [3]int {
	r := int(c>>11) & 0x1F
	g := int(c>>5) & 0x3F
	b := int(c) & 0x1F
	return [3]int{(r << 3) | (r >> 2), (g << 2) | (g >> 4), (b << 3) | (b >> 2)}
}

// colorPalette builds the four colors of a DXT color block. DXT1 blocks with
// c0 <= c1 use the three-color mode with a transparent fourth entry; DXT3 and
// DXT5 always use four colors.
func colorPalette(block []byte, fourColor bool) [4][4]uint8 {
	c0 := uint16(block[0]) | uint16(block[1])<<8
	c1 := uint16(block[2]) | uint16(block[3])<<8
	e0, e1 := rgb565(c0), rgb565(c1)

	var colors [4][4]uint8
	for ch := 0; ch < 3; ch++ {
		colors[0][ch] = uint8(e0[ch])
		colors[1][ch] = uint8(e1[ch])
		if fourColor || c0 > c1 {
			colors[2][ch] = uint8((2*e0[ch] + e1[ch]) / 3)
			colors[3][ch] = uint8((e0[ch] + 2*e1[ch]) / 3)
		} else {
			colors[2][ch] = uint8((e0[ch] + e1[ch]) / 2)
		}
	}
	colors[0][3], colors[1][3], colors[2][3] = 255, 255, 255
	if fourColor || c0 > c1 {
		colors[3][3] = 255
	}
	return colors
}

// alphaPalette builds the eight alpha values of a DXT5 alpha block.
func alphaPalette(a0, a1 uint8) [8]uint8 {
	var alphas [8]uint8
	alphas[0] = a0
	alphas[1] = a1
	if a0 > a1 {
		for i := 2; i < 8; i++ {
			alphas[i] = uint8((int(a0)*(8-i) + int(a1)*(i-1)) / 7)
		}
	} else {
		for i := 2; i < 6; i++ {
			alphas[i] = uint8((int(a0)*(6-i) + int(a1)*(i-1)) / 5)
		}
		alphas[6] = 0
		alphas[7] = 255
	}
	return alphas
}

// alphaBlock expands the 8-byte alpha half of a DXT3 or DXT5 block to one
// value per pixel.
type alphaBlock func(block []byte) [16]uint8

func dxt3Alpha(block []byte) [16]uint8 {
	var out [16]uint8
	for p := range out {
		nibble := (block[p/2] >> (4 * uint(p%2))) & 0x0F
		out[p] = nibble<<4 | nibble
	}
	return out
}

func dxt5Alpha(block []byte) [16]uint8 {
	alphas := alphaPalette(block[0], block[1])
	var indices uint64
	for i := 0; i < 6; i++ {
		indices |= uint64(block[2+i]) << (i * 8)
	}

	var out [16]uint8
	for p := range out {
		out[p] = alphas[(indices>>(3*uint(p)))&7]
	}
	return out
}

// decodeBlocks decodes a DXT1, DXT3 or DXT5 top level. alpha is nil for DXT1.
func decodeBlocks(data []byte, width, height int, alpha alphaBlock) (*image.NRGBA, error) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, width, height))

	blockSize := 8
	if alpha != nil {
		blockSize = 16
	}
	blockW := (width + 3) / 4
	blockH := (height + 3) / 4
	if need := blockW * blockH * blockSize; len(data) < need {
		return nil, fmt.Errorf("data truncated: need %d bytes, got %d", need, len(data))
	}

	offset := 0
	for by := 0; by < blockH; by++ {
		for bx := 0; bx < blockW; bx++ {
			var alphas [16]uint8
			if alpha != nil {
				alphas = alpha(data[offset : offset+8])
				offset += 8
			}
			colors := colorPalette(data[offset:offset+4], alpha != nil)
			indices := uint32(data[offset+4]) | uint32(data[offset+5])<<8 |
				uint32(data[offset+6])<<16 | uint32(data[offset+7])<<24
			offset += 8

			for py := 0; py < 4; py++ {
				for px := 0; px < 4; px++ {
					x := bx*4 + px
					y := by*4 + py
					if x >= width || y >= height {
						continue
					}

					p := py*4 + px
					color := colors[(indices>>(2*uint(p)))&3]
					if alpha != nil {
						color[3] = alphas[p]
					}

					pix := nrgba.PixOffset(x, y)
					copy(nrgba.Pix[pix:pix+4], color[:])
				}
			}
		}
	}

	return nrgba, nil
}

// decodeA8 expands an 8-bit alpha mask to opaque grayscale.
func decodeA8(data []byte, width, height int) (*image.NRGBA, error) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, width, height))
	if len(data) < width*height {
		return nil, fmt.Errorf("data truncated: need %d bytes, got %d", width*height, len(data))
	}

	for i, v := range data[:width*height] {
		pix := i * 4
		nrgba.Pix[pix+0] = v
		nrgba.Pix[pix+1] = v
		nrgba.Pix[pix+2] = v
		nrgba.Pix[pix+3] = 255
	}
	return nrgba, nil
}
