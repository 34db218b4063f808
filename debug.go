package main

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Current debug window address.
	///
	Address uint16
)

/// logLines is how many lines the log panel shows.
///
const logLines = 16

/// DebugAssembly renders the disassembled instructions around the
/// CHIP-8 program counter.
///
func DebugAssembly(x, y int32) {
	if Address <= VM.PC-30 || Address >= VM.PC-2 || Address^VM.PC&1 == 1 {
		Address = VM.PC - 2
	}

	// show the disassembled instructions
	for i := int32(0); i < 32; i += 2 {
		if Address+uint16(i) == VM.PC {
			if Paused {
				Renderer.SetDrawColor(176, 32, 57, 255)
			} else {
				Renderer.SetDrawColor(57, 102, 176, 255)
			}

			// highlight the current instruction
			Renderer.FillRect(&sdl.Rect{
				X: x,
				Y: y + i*5 - 1,
				W: 200,
				H: 10,
			})
		}

		DrawText(VM.Disassemble(Address+uint16(i)), x, y+i*5)
	}
}

/// DebugRegisters shows the current value of all the CHIP-8
/// registers.
///
func DebugRegisters(x, y int32) {
	regs := VM.GetRegisters()

	for i := int32(0); i < 16; i++ {
		DrawText(fmt.Sprintf("V%X - #%02X", i, regs.V[i]), x, y+i*10)
	}

	// shift over for the other registers
	x += 70

	DrawText(fmt.Sprintf("PC - #%04X", regs.PC), x, y)
	DrawText(fmt.Sprintf("SP - #%02X", regs.SP), x, y+10)
	DrawText(fmt.Sprintf("I  - #%04X", regs.I), x, y+30)
	DrawText(fmt.Sprintf("DT - #%02X", regs.DT), x, y+50)
	DrawText(fmt.Sprintf("ST - #%02X", regs.ST), x, y+60)

	// display state
	w, h := VM.GetResolution()
	DrawText(fmt.Sprintf("%dX%d", w, h), x, y+80)
	DrawText(fmt.Sprintf("PLANE %d", VM.Video.Plane), x, y+90)
	DrawText(fmt.Sprintf("SPEED %d", VM.Quirks.CyclesPerFrame), x, y+100)
}

/// DebugLog shows the current log panel text.
///
func DebugLog(x, y int32) {
	for _, line := range Output.Window(logLines) {
		if len(line) >= 53 {
			DrawText(line[:50]+"...", x, y)
		} else {
			DrawText(line, x, y)
		}

		// advance to the next line
		y += 10
	}
}
