package chip8

import (
	"bytes"
	"encoding/binary"
)

/// Snapshot file layout: a 4-byte magic, a 2-byte version, then the
/// fixed-size state record in big-endian byte order.
///
const stateVersion = 1

var stateMagic = [4]byte{'P', 'I', 'C', '8'}

/// stateRecord is every piece of machine state a snapshot carries.
/// All fields are fixed size so the whole record round-trips through
/// encoding/binary.
///
type stateRecord struct {
	Dialect uint8

	// quirks
	LoadStoreIncrementsI bool
	ShiftUsesVY          bool
	Jump0UsesVX          bool
	VFResetOnLogic       bool
	SpriteWrapH          bool
	SpriteWrapV          bool
	DisplayWait          bool
	ClipSprites          bool
	CyclesPerFrame       uint32

	ROM    [0x1000]byte
	Memory [0x1000]byte
	RomLen uint16

	PC    uint16
	SP    uint8
	Stack [16]uint16
	I     uint16
	V     [16]byte
	DT    byte
	ST    byte
	RPL   [16]byte

	Keys     uint16
	LastKeys uint16
	Wait     int8

	Pattern [16]byte
	Pitch   byte

	Plane   byte
	HighRes bool
	Planes  [2][planeBytes]byte

	DrawCount uint16
	Halted    bool
}

/// Snapshot serializes the entire machine into a self-describing
/// binary blob.
///
func (vm *CHIP_8) Snapshot() []byte {
	rec := stateRecord{
		Dialect:              uint8(vm.Dialect),
		LoadStoreIncrementsI: vm.Quirks.LoadStoreIncrementsI,
		ShiftUsesVY:          vm.Quirks.ShiftUsesVY,
		Jump0UsesVX:          vm.Quirks.Jump0UsesVX,
		VFResetOnLogic:       vm.Quirks.VFResetOnLogic,
		SpriteWrapH:          vm.Quirks.SpriteWrapH,
		SpriteWrapV:          vm.Quirks.SpriteWrapV,
		DisplayWait:          vm.Quirks.DisplayWait,
		ClipSprites:          vm.Quirks.ClipSprites,
		CyclesPerFrame:       uint32(vm.Quirks.CyclesPerFrame),
		ROM:                  vm.ROM,
		Memory:               vm.Memory,
		RomLen:               uint16(vm.romLen),
		PC:                   vm.PC,
		SP:                   uint8(vm.SP),
		Stack:                vm.Stack,
		I:                    vm.I,
		V:                    vm.V,
		DT:                   vm.DT,
		ST:                   vm.ST,
		RPL:                  vm.RPL,
		Keys:                 vm.Keys,
		LastKeys:             vm.LastKeys,
		Wait:                 int8(vm.Wait),
		Pattern:              vm.Pattern,
		Pitch:                vm.Pitch,
		Plane:                vm.Video.Plane,
		HighRes:              vm.Video.HighRes,
		Planes:               vm.Video.Planes,
		DrawCount:            uint16(vm.DrawCount),
		Halted:               vm.Halted,
	}

	buf := &bytes.Buffer{}
	buf.Write(stateMagic[:])

	binary.Write(buf, binary.BigEndian, uint16(stateVersion))
	binary.Write(buf, binary.BigEndian, &rec)

	return buf.Bytes()
}

/// Restore replaces the machine state with a snapshot. Restoring is
/// atomic: on any validation failure the machine is left untouched
/// and ErrBadSnapshot is returned.
///
func (vm *CHIP_8) Restore(data []byte) error {
	buf := bytes.NewReader(data)

	var magic [4]byte
	if _, err := buf.Read(magic[:]); err != nil || magic != stateMagic {
		return ErrBadSnapshot
	}

	var version uint16
	if err := binary.Read(buf, binary.BigEndian, &version); err != nil || version != stateVersion {
		return ErrBadSnapshot
	}

	var rec stateRecord
	if err := binary.Read(buf, binary.BigEndian, &rec); err != nil {
		return ErrBadSnapshot
	}

	if rec.Dialect > uint8(DIALECT_XO_CHIP) || rec.SP > 16 || rec.Wait > 15 || rec.Wait < -1 {
		return ErrBadSnapshot
	}

	// all validated, swap the state in
	vm.Dialect = Dialect(rec.Dialect)
	vm.Quirks = Quirks{
		LoadStoreIncrementsI: rec.LoadStoreIncrementsI,
		ShiftUsesVY:          rec.ShiftUsesVY,
		Jump0UsesVX:          rec.Jump0UsesVX,
		VFResetOnLogic:       rec.VFResetOnLogic,
		SpriteWrapH:          rec.SpriteWrapH,
		SpriteWrapV:          rec.SpriteWrapV,
		DisplayWait:          rec.DisplayWait,
		ClipSprites:          rec.ClipSprites,
		CyclesPerFrame:       uint(rec.CyclesPerFrame),
	}
	vm.ROM = rec.ROM
	vm.Memory = rec.Memory
	vm.romLen = int(rec.RomLen)
	vm.PC = rec.PC
	vm.SP = uint(rec.SP)
	vm.Stack = rec.Stack
	vm.I = rec.I
	vm.V = rec.V
	vm.DT = rec.DT
	vm.ST = rec.ST
	vm.RPL = rec.RPL
	vm.Keys = rec.Keys
	vm.LastKeys = rec.LastKeys
	vm.Wait = int(rec.Wait)
	vm.Pattern = rec.Pattern
	vm.Pitch = rec.Pitch
	vm.Video = &VideoMemory{
		Planes:  rec.Planes,
		Plane:   rec.Plane,
		HighRes: rec.HighRes,
	}
	vm.DrawCount = uint(rec.DrawCount)
	vm.Halted = rec.Halted

	return nil
}
