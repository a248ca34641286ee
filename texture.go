package meshsplit

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
)

// Texture is a decoded RGBA image used to derive vertex colors when the
// source mesh carries a base color texture instead of a COLOR_0 attribute.
type Texture struct {
	Width  int
	Height int
	Data   []byte // RGBA, 4 bytes per pixel, rows top to bottom
}

func decodeTexture(mime string, rd io.Reader) (*Texture, error) {
	var img image.Image
	var err error
	if mime == "image/png" {
		img, err = png.Decode(rd)
	} else if mime == "image/jpg" || mime == "image/jpeg" {
		img, err = jpeg.Decode(rd)
	} else {
		return nil, errors.New("not support image type")
	}
	if err != nil {
		return nil, err
	}

	w := img.Bounds().Size().X
	h := img.Bounds().Size().Y
	tex := &Texture{Width: w, Height: h, Data: make([]byte, 0, w*h*4)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cl := img.At(x, y)
			r, g, b, a := color.RGBAModel.Convert(cl).RGBA()
			tex.Data = append(tex.Data, byte(r), byte(g), byte(b), byte(a))
		}
	}
	return tex, nil
}

// Sample returns the texel nearest to the texture coordinate (u, v) with
// wrap-around addressing. GLTF places v=0 at the top of the image.
func (t *Texture) Sample(u, v float32) [4]byte {
	x := wrapCoord(u, t.Width)
	y := wrapCoord(v, t.Height)
	i := (y*t.Width + x) * 4
	return [4]byte{t.Data[i], t.Data[i+1], t.Data[i+2], t.Data[i+3]}
}

func wrapCoord(c float32, n int) int {
	i := int(math.Floor(float64(c) * float64(n)))
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
