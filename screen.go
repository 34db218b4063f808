package main

import (
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Screen is the render target for the CHIP-8 framebuffer.
	///
	Screen *sdl.Texture

	/// Palette maps the pair of plane bits of a pixel to a color.
	/// Index = plane1 bit | plane2 bit << 1.
	///
	Palette = [4][3]uint8{
		{143, 145, 133}, // both off: background
		{17, 29, 43},    // plane 1
		{85, 94, 104},   // plane 2
		{205, 209, 199}, // both planes
	}
)

/// InitScreen creates the render target for the CHIP-8 video memory.
///
func InitScreen() {
	var err error

	// create a render target at the high-res dimensions
	Screen, err = Renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, 128, 64)
	if err != nil {
		panic(err)
	}
}

/// RefreshScreen with the CHIP-8 video memory.
///
func RefreshScreen() {
	if err := Renderer.SetRenderTarget(Screen); err != nil {
		panic(err)
	}

	// the background color for the screen
	Renderer.SetDrawColor(Palette[0][0], Palette[0][1], Palette[0][2], 255)
	Renderer.Clear()

	// redraw only the dimensions of the video
	w, h := VM.GetResolution()

	// draw all the pixels, colored by their plane pair
	for y := uint(0); y < h; y++ {
		for x := uint(0); x < w; x++ {
			c := 0

			if VM.Video.Pixel(0, x, y) {
				c |= 1
			}
			if VM.Video.Pixel(1, x, y) {
				c |= 2
			}

			if c != 0 {
				Renderer.SetDrawColor(Palette[c][0], Palette[c][1], Palette[c][2], 255)
				Renderer.DrawPoint(int32(x), int32(y))
			}
		}
	}

	// restore the render target
	Renderer.SetRenderTarget(nil)
}

/// CopyScreen to the render target, stretching the logical resolution
/// to fit the destination area.
///
func CopyScreen(x, y, w, h int32) {
	vw, vh := VM.GetResolution()

	// source area of the screen target
	src := sdl.Rect{
		W: int32(vw),
		H: int32(vh),
	}

	// stretch the render target to fit
	Renderer.Copy(Screen, &src, &sdl.Rect{X: x, Y: y, W: w, H: h})
}
