package main

import (
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Texture containing a predefined font for the debug panels.
	///
	Font *sdl.Texture
)

/// InitFont loads the bitmap surface with the font on it.
///
func InitFont() {
	surface, err := sdl.LoadBMP("data/font.bmp")
	if err != nil {
		panic(err)
	}
	defer surface.Free()

	// get the magenta color
	mask := sdl.MapRGB(surface.Format, 255, 0, 255)

	// set the mask color key
	surface.SetColorKey(true, mask)

	// create the texture
	if Font, err = Renderer.CreateTextureFromSurface(surface); err != nil {
		panic(err)
	}
}

/// DrawText using the loaded font.
///
func DrawText(s string, x, y int32) {
	src := sdl.Rect{W: 5, H: 7}
	dst := sdl.Rect{
		X: x,
		Y: y,
		W: 5,
		H: 7,
	}

	// loop over all the characters in the string
	for _, c := range s {
		if c > 32 && c < 94 {
			src.X = (int32(c) - 33) * 6

			// draw the character to the renderer
			Renderer.Copy(Font, &src, &dst)
		}

		// advance
		dst.X += 7
	}
}
