package chip8

/// Physical plane dimensions. Both planes are always stored at the
/// high-res size; low-res content occupies the top-left 64x32 region
/// and the renderer upsamples it 2x.
///
const (
	VideoWidth  = 128
	VideoHeight = 64
	planeBytes  = VideoWidth * VideoHeight / 8
)

/// VideoMemory is the two-plane framebuffer shared by all three
/// dialects. Each plane is a row-major bit array, MSB first, so pixel
/// <0,0> is bit 0x80 of byte 0.
///
type VideoMemory struct {
	/// Planes hold the two monochrome bit layers. Plain CHIP-8 and
	/// SUPER-CHIP only ever touch the first one.
	///
	Planes [2][planeBytes]byte

	/// Plane is the current plane mask (0..3) selected by FX01. Draw,
	/// clear and scroll operations apply to the selected planes only.
	///
	Plane byte

	/// HighRes is true in the extended 128x64 mode.
	///
	HighRes bool
}

/// NewVideoMemory returns a cleared framebuffer in low-res mode with
/// the first plane selected.
///
func NewVideoMemory() *VideoMemory {
	return &VideoMemory{Plane: 1}
}

/// Width returns the logical width in pixels.
///
func (v *VideoMemory) Width() uint {
	if v.HighRes {
		return 128
	}

	return 64
}

/// Height returns the logical height in pixels.
///
func (v *VideoMemory) Height() uint {
	if v.HighRes {
		return 64
	}

	return 32
}

/// Pixel returns the state of one pixel of one plane. Coordinates are
/// logical; out of range coordinates read as off.
///
func (v *VideoMemory) Pixel(plane, x, y uint) bool {
	if plane > 1 || x >= v.Width() || y >= v.Height() {
		return false
	}

	i := y*VideoWidth + x

	return v.Planes[plane][i>>3]&(0x80>>(i&7)) != 0
}

/// SetPixel sets or clears one pixel of one plane.
///
func (v *VideoMemory) SetPixel(plane, x, y uint, on bool) {
	if plane > 1 || x >= v.Width() || y >= v.Height() {
		return
	}

	i := y*VideoWidth + x

	if on {
		v.Planes[plane][i>>3] |= 0x80 >> (i & 7)
	} else {
		v.Planes[plane][i>>3] &^= 0x80 >> (i & 7)
	}
}

/// selected reports whether a plane is in the current plane mask.
///
func (v *VideoMemory) selected(plane uint) bool {
	return v.Plane&(1<<plane) != 0
}

/// SetMode switches between low-res and high-res. The resolution
/// change always clears the selected planes.
///
func (v *VideoMemory) SetMode(highRes bool) {
	v.HighRes = highRes
	v.Clear()
}

/// Clear zeroes every bit of the selected planes.
///
func (v *VideoMemory) Clear() {
	for p := uint(0); p < 2; p++ {
		if v.selected(p) {
			v.Planes[p] = [planeBytes]byte{}
		}
	}
}

/// ScrollDown shifts the selected planes down by n logical rows,
/// filling the exposed rows with zeroes.
///
func (v *VideoMemory) ScrollDown(n uint) {
	w, h := v.Width(), v.Height()

	for p := uint(0); p < 2; p++ {
		if !v.selected(p) {
			continue
		}

		for y := h; y > 0; y-- {
			for x := uint(0); x < w; x++ {
				on := false

				// rows shifted in are blank
				if y-1 >= n {
					on = v.Pixel(p, x, y-1-n)
				}

				v.SetPixel(p, x, y-1, on)
			}
		}
	}
}

/// ScrollUp shifts the selected planes up by n logical rows.
///
func (v *VideoMemory) ScrollUp(n uint) {
	w, h := v.Width(), v.Height()

	for p := uint(0); p < 2; p++ {
		if !v.selected(p) {
			continue
		}

		for y := uint(0); y < h; y++ {
			on := false

			for x := uint(0); x < w; x++ {
				if y+n < h {
					on = v.Pixel(p, x, y+n)
				} else {
					on = false
				}

				v.SetPixel(p, x, y, on)
			}
		}
	}
}

/// ScrollRight shifts the selected planes right by 4 logical pixels.
///
func (v *VideoMemory) ScrollRight() {
	w, h := v.Width(), v.Height()

	for p := uint(0); p < 2; p++ {
		if !v.selected(p) {
			continue
		}

		for y := uint(0); y < h; y++ {
			for x := w; x > 0; x-- {
				on := false

				if x-1 >= 4 {
					on = v.Pixel(p, x-1-4, y)
				}

				v.SetPixel(p, x-1, y, on)
			}
		}
	}
}

/// ScrollLeft shifts the selected planes left by 4 logical pixels.
///
func (v *VideoMemory) ScrollLeft() {
	w, h := v.Width(), v.Height()

	for p := uint(0); p < 2; p++ {
		if !v.selected(p) {
			continue
		}

		for y := uint(0); y < h; y++ {
			for x := uint(0); x < w; x++ {
				on := false

				if x+4 < w {
					on = v.Pixel(p, x+4, y)
				}

				v.SetPixel(p, x, y, on)
			}
		}
	}
}
