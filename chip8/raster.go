package chip8

/// drw renders the DXYN sprite at (vx, vy) and leaves the collision
/// result in VF. Sprite data is read from memory at I; when both
/// planes are selected, the first plane consumes the first block of
/// bytes and the second plane the block after it.
///
func (vm *CHIP_8) drw(x, y uint, n byte) {
	w, h := vm.Video.Width(), vm.Video.Height()

	// origin wraps onto the screen even when pixels clip
	ox := uint(vm.V[x]) % w
	oy := uint(vm.V[y]) % h

	// 8xN sprite, or 16x16 when N is zero on the later dialects
	cols, rows := uint(8), uint(n)

	if n == 0 && vm.Dialect >= DIALECT_SUPER_CHIP {
		cols, rows = 16, 16
	}

	wrapH := vm.Quirks.SpriteWrapH && !vm.Quirks.ClipSprites
	wrapV := vm.Quirks.SpriteWrapV && !vm.Quirks.ClipSprites

	// per-row collision and clip flags, shared across planes
	var hit, clipped [16]bool

	addr := vm.I

	for plane := uint(0); plane < 2; plane++ {
		if !vm.Video.selected(plane) {
			continue
		}

		for r := uint(0); r < rows; r++ {
			// one or two octets per sprite row
			bits := uint(vm.Memory[addr&0xFFF]) << 8
			addr += 1

			if cols == 16 {
				bits |= uint(vm.Memory[addr&0xFFF])
				addr += 1
			} else {
				bits >>= 8
			}

			py := oy + r

			if py >= h {
				if !wrapV {
					clipped[r] = true
					continue
				}

				py %= h
			}

			for c := uint(0); c < cols; c++ {
				if bits&(1<<(cols-1-c)) == 0 {
					continue
				}

				px := ox + c

				if px >= w {
					if !wrapH {
						continue
					}

					px %= w
				}

				// xor the pixel, a 1->0 transition is a collision
				on := vm.Video.Pixel(plane, px, py)

				if on {
					hit[r] = true
				}

				vm.Video.SetPixel(plane, px, py, !on)
			}
		}
	}

	// vf is written last: 0/1 in lo-res, a row count in hi-res on the
	// later dialects
	if vm.Video.HighRes && vm.Dialect >= DIALECT_SUPER_CHIP {
		count := byte(0)

		for r := uint(0); r < rows; r++ {
			if hit[r] || clipped[r] {
				count += 1
			}
		}

		vm.V[0xF] = count
	} else {
		vm.V[0xF] = 0

		for r := uint(0); r < rows; r++ {
			if hit[r] {
				vm.V[0xF] = 1
			}
		}
	}
}
