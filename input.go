package main

import (
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Mapping of modern keyboard to CHIP-8 keys.
	///
	KeyMap = map[sdl.Scancode]uint{
		sdl.SCANCODE_X: 0x0,
		sdl.SCANCODE_1: 0x1,
		sdl.SCANCODE_2: 0x2,
		sdl.SCANCODE_3: 0x3,
		sdl.SCANCODE_Q: 0x4,
		sdl.SCANCODE_W: 0x5,
		sdl.SCANCODE_E: 0x6,
		sdl.SCANCODE_A: 0x7,
		sdl.SCANCODE_S: 0x8,
		sdl.SCANCODE_D: 0x9,
		sdl.SCANCODE_Z: 0xA,
		sdl.SCANCODE_C: 0xB,
		sdl.SCANCODE_4: 0xC,
		sdl.SCANCODE_R: 0xD,
		sdl.SCANCODE_F: 0xE,
		sdl.SCANCODE_V: 0xF,
	}

	/// Keys is the keypad mask handed to the VM before each frame.
	///
	Keys uint16

	/// True if pausing emulation (single stepping).
	///
	Paused bool
)

/// ProcessEvents from SDL and map keys to the CHIP-8 VM.
///
func ProcessEvents() bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN {
				if !keyDown(ev) {
					return false
				}
			} else if ev.Type == sdl.KEYUP {
				if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
					Keys &^= 1 << key
				}
			}
		}
	}

	return true
}

/// keyDown handles a pressed key; returns false to quit.
///
func keyDown(ev *sdl.KeyboardEvent) bool {
	if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
		Keys |= 1 << key

		return true
	}

	switch ev.Keysym.Scancode {
	case sdl.SCANCODE_ESCAPE:
		return false
	case sdl.SCANCODE_BACKSPACE:
		VM.Reset()

		// holding control during reset will reboot paused
		if ev.Keysym.Mod&sdl.KMOD_CTRL != 0 {
			Paused = true
		}
	case sdl.SCANCODE_UP, sdl.SCANCODE_PAGEUP:
		Output.ScrollUp()
	case sdl.SCANCODE_DOWN, sdl.SCANCODE_PAGEDOWN:
		Output.ScrollDown(logLines)
	case sdl.SCANCODE_HOME:
		Output.Home()
	case sdl.SCANCODE_END:
		Output.End()
	case sdl.SCANCODE_H:
		Help()
	case sdl.SCANCODE_F2:
		Load()
	case sdl.SCANCODE_F3:
		LoadDialog()
	case sdl.SCANCODE_F4:
		SaveState()
	case sdl.SCANCODE_F7:
		LoadState()
	case sdl.SCANCODE_LEFTBRACKET:
		VM.DecSpeed()
	case sdl.SCANCODE_RIGHTBRACKET:
		VM.IncSpeed()
	case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
		Paused = !Paused
	case sdl.SCANCODE_F6, sdl.SCANCODE_F10:
		if Paused {
			if err := VM.Step(); err != nil {
				Logln("Step failed:", err.Error())
			}
		}
	case sdl.SCANCODE_F9:
		if VM.Breakpoints[VM.PC] {
			VM.RemoveBreakpoint(VM.PC)
			Logln("Breakpoint removed")
		} else {
			VM.AddBreakpoint(VM.PC)
			Logln("Breakpoint set", VM.Disassemble(VM.PC))
		}
	}

	return true
}

/// Help shows the key bindings in the log.
///
func Help() {
	Logln("Virtual keys:")
	Log("  1-2-3-4")
	Log("  Q-W-E-R")
	Log("  A-S-D-F")
	Log("  Z-X-C-V")
	Logln("Emulation keys:")
	Log("  ESC      - Quit")
	Log("  BS       - Reboot")
	Log("  Pg Up/Dn - Scroll log")
	Log("  F2       - Reload ROM")
	Log("  F3       - Open ROM")
	Log("  F4       - Save state")
	Log("  F7       - Load state")
	Log("  F5/SPACE - Pause")
	Log("  F6/F10   - Step")
	Log("  F9       - Toggle breakpoint")
	Log("  [ / ]    - Speed down/up")
}
