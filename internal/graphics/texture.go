package graphics

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"math/rand"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	xdraw "golang.org/x/image/draw"
)

// maxTextureDim caps uploaded texture size; larger images are downscaled.
const maxTextureDim = 1024

// LoadTexture loads a 2D texture from a file, downscaling oversized
// images before upload.
func LoadTexture(path string) (uint32, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open texture file: %v", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return 0, fmt.Errorf("failed to decode image: %v", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxTextureDim || h > maxTextureDim {
		scale := maxTextureDim
		rgba := image.NewRGBA(image.Rect(0, 0, scale, scale))
		xdraw.BiLinear.Scale(rgba, rgba.Bounds(), img, bounds, xdraw.Src, nil)
		return uploadRGBA(rgba), nil
	}

	rgba := image.NewRGBA(bounds)
	xdraw.Copy(rgba, image.Point{}, img, bounds, xdraw.Src, nil)
	return uploadRGBA(rgba), nil
}

// GrassTexture builds a small mottled-green texture in memory so the
// viewer runs without an asset directory.
func GrassTexture() uint32 {
	const size = 64
	rng := rand.New(rand.NewSource(7))
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			g := uint8(130 + rng.Intn(60))
			rgba.Set(x, y, color.RGBA{R: g / 3, G: g, B: g / 4, A: 255})
		}
	}
	return uploadRGBA(rgba)
}

func uploadRGBA(rgba *image.RGBA) uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(rgba.Rect.Size().X),
		int32(rgba.Rect.Size().Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texture
}
