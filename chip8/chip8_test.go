package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// newTestVM returns a machine with a deterministic random source.
func newTestVM(dialect Dialect, quirks Quirks) *CHIP_8 {
	vm := NewVM(dialect, quirks)
	vm.SetRandSource(func() byte { return 0xFF })
	return vm
}

// loadWords writes instruction words to 0x200 and points PC at them.
func loadWords(vm *CHIP_8, words ...uint16) {
	rom := make([]byte, 0, len(words)*2)
	for _, w := range words {
		rom = append(rom, byte(w>>8), byte(w))
	}
	if err := vm.LoadROM(rom); err != nil {
		panic(err)
	}
}

func TestInitialState(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())

	assert.Equal(t, 0x200, int(vm.PC))
	assert.Equal(t, 0, int(vm.SP))
	assert.Equal(t, 0, int(vm.I))
	assert.Equal(t, -1, vm.Wait)
	assert.False(t, vm.Video.HighRes)
	assert.Equal(t, 1, int(vm.Video.Plane))

	// fonts are installed below 0x200
	assert.Equal(t, FontSprites[0], vm.Memory[FontBase])
	assert.Equal(t, BigFontSprites[0], vm.Memory[BigFontBase])

	for i := 0x200; i < 0x1000; i++ {
		assert.Equal(t, 0, int(vm.Memory[i]))
	}
}

func TestLoadROM(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())

	assert.NoError(t, vm.LoadROM([]byte{0x12, 0x00}))
	assert.Equal(t, 0x12, int(vm.Memory[0x200]))
	assert.Equal(t, 0x00, int(vm.Memory[0x201]))

	// maximum size fits, one byte more does not
	assert.NoError(t, vm.LoadROM(make([]byte, 0x1000-0x200)))
	assert.Error(t, vm.LoadROM(make([]byte, 0x1000-0x200+1)))
	assert.True(t, errors.Is(vm.LoadROM(make([]byte, 4096)), ErrRomTooLarge))
}

func TestReset(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())
	loadWords(vm, 0x6042) // LD V0, #42

	assert.NoError(t, vm.Step())
	assert.Equal(t, 0x42, int(vm.V[0]))
	assert.Equal(t, 0x202, int(vm.PC))

	vm.Memory[0x300] = 0xAB
	vm.DT = 10
	vm.Reset()

	// the program survives, the mutations do not
	assert.Equal(t, 0x60, int(vm.Memory[0x200]))
	assert.Equal(t, 0, int(vm.Memory[0x300]))
	assert.Equal(t, 0x200, int(vm.PC))
	assert.Equal(t, 0, int(vm.V[0]))
	assert.Equal(t, 0, int(vm.DT))
}

func TestCarryAndVFWrittenLast(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())
	loadWords(vm, 0x8014, 0x80F4)

	// 0xFF + 0x01 overflows to zero with carry
	vm.V[0] = 0xFF
	vm.V[1] = 0x01
	assert.NoError(t, vm.Step())
	assert.Equal(t, 0x00, int(vm.V[0]))
	assert.Equal(t, 1, int(vm.V[0xF]))

	// adding VF into V0 stores the sum before clearing VF
	vm.V[0] = 0x10
	vm.V[0xF] = 0x33
	assert.NoError(t, vm.Step())
	assert.Equal(t, 0x43, int(vm.V[0]))
	assert.Equal(t, 0, int(vm.V[0xF]))
}

func TestVFIsShiftFlagWhenXIsF(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, ModernQuirks())
	loadWords(vm, 0x8FF6) // SHR VF

	vm.V[0xF] = 0x02
	assert.NoError(t, vm.Step())

	// the shifted-out bit wins over the shifted value
	assert.Equal(t, 0, int(vm.V[0xF]))
}

func TestShiftQuirk(t *testing.T) {
	tests := []struct {
		name   string
		usesVY bool
		wantV0 byte
		wantVF byte
	}{
		{"shift uses vy", true, 0x2A, 1},
		{"shift uses vx", false, 0x55, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := LegacyQuirks()
			q.ShiftUsesVY = tt.usesVY

			vm := newTestVM(DIALECT_CHIP_8, q)
			loadWords(vm, 0x8016) // SHR V0, V1

			vm.V[0] = 0xAA
			vm.V[1] = 0x55
			assert.NoError(t, vm.Step())
			assert.Equal(t, tt.wantV0, vm.V[0])
			assert.Equal(t, tt.wantVF, vm.V[0xF])
		})
	}
}

func TestLoadStoreQuirk(t *testing.T) {
	tests := []struct {
		name       string
		increments bool
		wantI      uint16
	}{
		{"i incremented", true, 0x304},
		{"i untouched", false, 0x300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := LegacyQuirks()
			q.LoadStoreIncrementsI = tt.increments

			vm := newTestVM(DIALECT_CHIP_8, q)
			loadWords(vm, 0xF355) // LD [I], V3

			vm.V[0], vm.V[1], vm.V[2], vm.V[3] = 1, 2, 3, 4
			vm.I = 0x300

			assert.NoError(t, vm.Step())
			assert.Equal(t, tt.wantI, vm.I)

			for i := 0; i < 4; i++ {
				assert.Equal(t, i+1, int(vm.Memory[0x300+i]))
			}
		})
	}
}

func TestLogicQuirkResetsVF(t *testing.T) {
	q := LegacyQuirks()
	vm := newTestVM(DIALECT_CHIP_8, q)
	loadWords(vm, 0x8011, 0x8012, 0x8013)

	for i := 0; i < 3; i++ {
		vm.V[0xF] = 0xEE
		assert.NoError(t, vm.Step())
		assert.Equal(t, 0, int(vm.V[0xF]))
	}

	// without the quirk VF is left alone
	q.VFResetOnLogic = false
	vm = newTestVM(DIALECT_CHIP_8, q)
	loadWords(vm, 0x8011)

	vm.V[0xF] = 0xEE
	assert.NoError(t, vm.Step())
	assert.Equal(t, 0xEE, int(vm.V[0xF]))
}

func TestSubtractBorrow(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())
	loadWords(vm, 0x8015, 0x8017)

	vm.V[0] = 0x10
	vm.V[1] = 0x20
	assert.NoError(t, vm.Step())
	assert.Equal(t, 0xF0, int(vm.V[0]))
	assert.Equal(t, 0, int(vm.V[0xF]))

	vm.V[0] = 0x10
	vm.V[1] = 0x20
	assert.NoError(t, vm.Step())
	assert.Equal(t, 0x10, int(vm.V[0]))
	assert.Equal(t, 1, int(vm.V[0xF]))
}

func TestJumpV0Quirk(t *testing.T) {
	q := LegacyQuirks()
	q.Jump0UsesVX = false

	vm := newTestVM(DIALECT_CHIP_8, q)
	loadWords(vm, 0xB210) // JP V0, #210

	vm.V[0] = 4
	assert.NoError(t, vm.Step())
	assert.Equal(t, 0x214, int(vm.PC))

	q.Jump0UsesVX = true
	vm = newTestVM(DIALECT_CHIP_8, q)
	loadWords(vm, 0xB210)

	vm.V[0] = 4
	vm.V[2] = 8
	assert.NoError(t, vm.Step())
	assert.Equal(t, 0x218, int(vm.PC))
}

func TestRandomUsesInjectedSource(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())
	loadWords(vm, 0xC00F) // RND V0, #0F

	vm.SetRandSource(func() byte { return 0xAB })
	assert.NoError(t, vm.Step())
	assert.Equal(t, 0x0B, int(vm.V[0]))
}

func TestCallRetAndStackErrors(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())
	loadWords(vm, 0x2206, 0x0000, 0x0000, 0x00EE)

	assert.NoError(t, vm.Step())
	assert.Equal(t, 0x206, int(vm.PC))
	assert.Equal(t, 1, int(vm.SP))
	assert.Equal(t, 0x202, int(vm.Stack[0]))

	assert.NoError(t, vm.Step())
	assert.Equal(t, 0x202, int(vm.PC))
	assert.Equal(t, 0, int(vm.SP))

	// underflow
	vm.PC = 0x206
	err := vm.Step()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, 0x206, int(vm.PC))

	// overflow after 16 nested calls
	vm = newTestVM(DIALECT_CHIP_8, LegacyQuirks())
	loadWords(vm, 0x2200) // CALL #200
	for i := 0; i < 16; i++ {
		assert.NoError(t, vm.Step())
	}
	err = vm.Step()
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, 0x200, int(vm.PC))
}

func TestIllegalOpcode(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())
	loadWords(vm, 0xF0FF)

	err := vm.Step()

	var illegal *IllegalOpcodeError
	assert.True(t, errors.As(err, &illegal))
	assert.Equal(t, 0x200, int(illegal.Address))
	assert.Equal(t, 0xF0FF, int(illegal.Word))

	// pc still points at the faulting instruction
	assert.Equal(t, 0x200, int(vm.PC))
}

func TestSkips(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())
	loadWords(vm, 0x3042) // SE V0, #42

	vm.V[0] = 0x42
	assert.NoError(t, vm.Step())
	assert.Equal(t, 0x204, int(vm.PC))

	vm.Reset()
	vm.V[0] = 0x00
	assert.NoError(t, vm.Step())
	assert.Equal(t, 0x202, int(vm.PC))
}

func TestSkipOverWideInstruction(t *testing.T) {
	vm := newTestVM(DIALECT_XO_CHIP, OctoQuirks())
	loadWords(vm, 0x3000, 0xF000, 0x0300) // SE V0, #00 / LD I, #0300

	// the skipped instruction is the double-word F000, so the skip
	// advances by four
	vm.V[0] = 0
	assert.NoError(t, vm.Step())
	assert.Equal(t, 0x206, int(vm.PC))
}

func TestWideLoadI(t *testing.T) {
	vm := newTestVM(DIALECT_XO_CHIP, OctoQuirks())
	loadWords(vm, 0xF000, 0x1234)

	assert.NoError(t, vm.Step())
	assert.Equal(t, 0x1234, int(vm.I))
	assert.Equal(t, 0x204, int(vm.PC))
}

func TestTimersAndSoundGate(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())
	loadWords(vm, 0x1200) // JP #200

	vm.DT = 2
	vm.ST = 1
	assert.True(t, vm.SoundGate())

	assert.NoError(t, vm.StepFrame())
	assert.Equal(t, 1, int(vm.DT))
	assert.Equal(t, 0, int(vm.ST))
	assert.False(t, vm.SoundGate())

	// never below zero
	assert.NoError(t, vm.StepFrame())
	assert.NoError(t, vm.StepFrame())
	assert.Equal(t, 0, int(vm.DT))
	assert.Equal(t, 0, int(vm.ST))
}

func TestTimerOpcodes(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())
	loadWords(vm, 0x6030, 0xF015, 0xF018, 0xF107) // LD V0 / LD DT, V0 / LD ST, V0 / LD V1, DT

	for i := 0; i < 4; i++ {
		assert.NoError(t, vm.Step())
	}

	assert.Equal(t, 0x30, int(vm.DT))
	assert.Equal(t, 0x30, int(vm.ST))
	assert.Equal(t, 0x30, int(vm.V[1]))
}

func TestWaitKeyProtocol(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())
	loadWords(vm, 0xF30A) // LD V3, K

	vm.DT = 10

	// frame with no keys: the machine enters the wait state with the
	// program counter parked on the instruction
	vm.SetKeys(0)
	assert.NoError(t, vm.StepFrame())
	assert.Equal(t, 3, vm.Wait)
	assert.Equal(t, 0x200, int(vm.PC))

	// a key press alone does not satisfy the wait
	vm.SetKeys(1 << 5)
	assert.NoError(t, vm.StepFrame())
	assert.Equal(t, 3, vm.Wait)
	assert.Equal(t, 0x200, int(vm.PC))
	assert.Equal(t, 8, int(vm.DT))

	// the release completes it
	vm.SetKeys(0)
	assert.NoError(t, vm.StepFrame())
	assert.Equal(t, -1, vm.Wait)
	assert.Equal(t, 5, int(vm.V[3]))
	assert.Equal(t, 0x202, int(vm.PC))
}

func TestSkipIfKey(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())
	loadWords(vm, 0xE09E, 0x0000, 0xE0A1) // SKP V0 / (skipped) / SKNP V0

	vm.V[0] = 7
	vm.SetKeys(1 << 7)
	assert.NoError(t, vm.Step())
	assert.Equal(t, 0x204, int(vm.PC))

	assert.NoError(t, vm.Step())
	assert.Equal(t, 0x206, int(vm.PC))
}

func TestExitHalts(t *testing.T) {
	vm := newTestVM(DIALECT_SUPER_CHIP, ModernQuirks())
	loadWords(vm, 0x00FD)

	err := vm.StepFrame()

	var halted *HaltedError
	assert.True(t, errors.As(err, &halted))
	assert.Equal(t, ExitRequested, halted.Reason)

	// halting is terminal until a reset
	assert.Error(t, vm.StepFrame())
	assert.True(t, vm.Halted)

	vm.Reset()
	assert.False(t, vm.Halted)
}

func TestFX1ELeavesVFAlone(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())
	loadWords(vm, 0xF01E)

	vm.I = 0xFFF
	vm.V[0] = 0x10
	vm.V[0xF] = 0x77
	assert.NoError(t, vm.Step())
	assert.Equal(t, 0x100F, int(vm.I))
	assert.Equal(t, 0x77, int(vm.V[0xF]))
}

func TestIndexWrapsMemory(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())
	loadWords(vm, 0xF033) // BCD with I near the top of memory

	vm.I = 0xFFE
	vm.V[0] = 254
	assert.NoError(t, vm.Step())

	// digits land at FFE, FFF and wrap to 000
	assert.Equal(t, 2, int(vm.Memory[0xFFE]))
	assert.Equal(t, 5, int(vm.Memory[0xFFF]))
	assert.Equal(t, 4, int(vm.Memory[0x000]))
}

func TestBCD(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())
	loadWords(vm, 0xF033)

	vm.I = 0x300
	vm.V[0] = 159
	assert.NoError(t, vm.Step())
	assert.Equal(t, 1, int(vm.Memory[0x300]))
	assert.Equal(t, 5, int(vm.Memory[0x301]))
	assert.Equal(t, 9, int(vm.Memory[0x302]))
}

func TestFontAddresses(t *testing.T) {
	vm := newTestVM(DIALECT_SUPER_CHIP, ModernQuirks())
	loadWords(vm, 0xF029, 0xF030)

	vm.V[0] = 0xA
	assert.NoError(t, vm.Step())
	assert.Equal(t, FontBase+10*5, int(vm.I))

	assert.NoError(t, vm.Step())
	assert.Equal(t, BigFontBase+10*10, int(vm.I))
}

func TestRegisterRanges(t *testing.T) {
	vm := newTestVM(DIALECT_XO_CHIP, OctoQuirks())
	loadWords(vm, 0x5132, 0x5313) // SAVE V1, V3 / RESTORE V3, V1

	vm.V[1], vm.V[2], vm.V[3] = 0xAA, 0xBB, 0xCC
	vm.I = 0x400

	assert.NoError(t, vm.Step())
	assert.Equal(t, 0xAA, int(vm.Memory[0x400]))
	assert.Equal(t, 0xBB, int(vm.Memory[0x401]))
	assert.Equal(t, 0xCC, int(vm.Memory[0x402]))
	assert.Equal(t, 0x400, int(vm.I))

	// the reversed range reads backwards
	vm.V[1], vm.V[2], vm.V[3] = 0, 0, 0
	assert.NoError(t, vm.Step())
	assert.Equal(t, 0xAA, int(vm.V[3]))
	assert.Equal(t, 0xBB, int(vm.V[2]))
	assert.Equal(t, 0xCC, int(vm.V[1]))
}

func TestRPLFlags(t *testing.T) {
	vm := newTestVM(DIALECT_SUPER_CHIP, ModernQuirks())
	loadWords(vm, 0xF775, 0x6000, 0xF785)

	for i := 0; i < 8; i++ {
		vm.V[i] = byte(i + 1)
	}

	assert.NoError(t, vm.Step())
	assert.NoError(t, vm.Step())
	assert.NoError(t, vm.Step())

	for i := 0; i < 8; i++ {
		assert.Equal(t, i+1, int(vm.V[i]))
	}

	// index past the S-CHIP window is rejected
	vm = newTestVM(DIALECT_SUPER_CHIP, ModernQuirks())
	loadWords(vm, 0xF875)

	var illegal *IllegalOpcodeError
	assert.True(t, errors.As(vm.Step(), &illegal))
}

func TestAudioRegisters(t *testing.T) {
	vm := newTestVM(DIALECT_XO_CHIP, OctoQuirks())
	loadWords(vm, 0x6180, 0xF13A, 0xA300, 0xF002)

	for i := 0; i < 16; i++ {
		vm.Memory[0x300+i] = byte(i)
	}

	for i := 0; i < 4; i++ {
		assert.NoError(t, vm.Step())
	}

	assert.Equal(t, 0x80, int(vm.AudioPitch()))

	pattern := vm.AudioPattern()
	for i := 0; i < 16; i++ {
		assert.Equal(t, i, int(pattern[i]))
	}
}

func TestDisplayWait(t *testing.T) {
	q := LegacyQuirks()
	q.CyclesPerFrame = 10

	vm := newTestVM(DIALECT_CHIP_8, q)
	loadWords(vm, 0xD001, 0xD001, 0x1204)

	assert.NoError(t, vm.StepFrame())

	// only the first draw ran this frame
	assert.Equal(t, 1, int(vm.DrawCount))
	assert.Equal(t, 0x202, int(vm.PC))

	assert.NoError(t, vm.StepFrame())
	assert.Equal(t, 1, int(vm.DrawCount))
	assert.Equal(t, 0x204, int(vm.PC))

	// without the quirk both draws run in one frame
	q.DisplayWait = false
	vm = newTestVM(DIALECT_CHIP_8, q)
	loadWords(vm, 0xD001, 0xD001, 0x1204)

	assert.NoError(t, vm.StepFrame())
	assert.Equal(t, 2, int(vm.DrawCount))
}

func TestBreakpoints(t *testing.T) {
	q := LegacyQuirks()
	q.CyclesPerFrame = 10

	vm := newTestVM(DIALECT_CHIP_8, q)
	loadWords(vm, 0x6001, 0x6102, 0x1204)

	vm.AddBreakpoint(0x202)

	assert.NoError(t, vm.StepFrame())
	assert.True(t, vm.Break)
	assert.Equal(t, 0x202, int(vm.PC))
	assert.Equal(t, 1, int(vm.V[0]))
	assert.Equal(t, 0, int(vm.V[1]))

	// the next frame resumes past the breakpoint
	assert.NoError(t, vm.StepFrame())
	assert.Equal(t, 2, int(vm.V[1]))

	vm.RemoveBreakpoint(0x202)
	assert.NoError(t, vm.StepFrame())
	assert.False(t, vm.Break)
}

func TestLastOpcodes(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())
	loadWords(vm, 0x6001, 0x6102, 0x6203)

	for i := 0; i < 3; i++ {
		assert.NoError(t, vm.Step())
	}

	trace := vm.LastOpcodes(2)
	assert.Len(t, trace, 2)
	assert.Equal(t, Trace{Addr: 0x202, Word: 0x6102}, trace[0])
	assert.Equal(t, Trace{Addr: 0x204, Word: 0x6203}, trace[1])

	// asking for more than remembered caps at the history size
	assert.Len(t, vm.LastOpcodes(100), 3)
}

func TestRegistersSnapshot(t *testing.T) {
	vm := newTestVM(DIALECT_CHIP_8, LegacyQuirks())
	loadWords(vm, 0x6005)

	assert.NoError(t, vm.Step())

	regs := vm.GetRegisters()
	assert.Equal(t, 0x202, int(regs.PC))
	assert.Equal(t, 5, int(regs.V[0]))
}

func TestDialectGating(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		word    uint16
		legal   bool
	}{
		{"scroll down on chip-8", DIALECT_CHIP_8, 0x00C3, false},
		{"scroll down on schip", DIALECT_SUPER_CHIP, 0x00C3, true},
		{"scroll up on schip", DIALECT_SUPER_CHIP, 0x00D3, false},
		{"scroll up on xo-chip", DIALECT_XO_CHIP, 0x00D3, true},
		{"plane on schip", DIALECT_SUPER_CHIP, 0xF201, false},
		{"plane on xo-chip", DIALECT_XO_CHIP, 0xF201, true},
		{"hires font on chip-8", DIALECT_CHIP_8, 0xF030, false},
		{"hires font on schip", DIALECT_SUPER_CHIP, 0xF030, true},
		{"wide load on schip", DIALECT_SUPER_CHIP, 0xF000, false},
		{"wide load on xo-chip", DIALECT_XO_CHIP, 0xF000, true},
		{"range save on xo-chip", DIALECT_XO_CHIP, 0x5012, true},
		{"range save on chip-8", DIALECT_CHIP_8, 0x5012, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(tt.dialect, ModernQuirks())
			loadWords(vm, tt.word)

			err := vm.Step()
			if tt.legal {
				assert.NoError(t, err)
			} else {
				var illegal *IllegalOpcodeError
				assert.True(t, errors.As(err, &illegal))
			}
		})
	}
}
