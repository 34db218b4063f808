package chip8

/// Quirks select between the legacy and modern behaviors that CHIP-8
/// interpreters have historically disagreed on. Every flag is consulted
/// by the executor, the rasterizer or the frame loop on the opcode it
/// belongs to.
///
type Quirks struct {
	/// LoadStoreIncrementsI causes FX55/FX65 to leave I incremented
	/// by X+1, the way the original RCA 1802 interpreter did.
	///
	LoadStoreIncrementsI bool

	/// ShiftUsesVY causes 8XY6/8XYE to shift VY into VX instead of
	/// shifting VX in place.
	///
	ShiftUsesVY bool

	/// Jump0UsesVX causes BNNN to jump to NNN+VX (X taken from the
	/// high nibble of NNN) instead of NNN+V0.
	///
	Jump0UsesVX bool

	/// VFResetOnLogic causes 8XY1/8XY2/8XY3 to clear VF.
	///
	VFResetOnLogic bool

	/// SpriteWrapH wraps sprite pixels past the right edge around to
	/// the left instead of clipping them.
	///
	SpriteWrapH bool

	/// SpriteWrapV wraps sprite pixels past the bottom edge around to
	/// the top instead of clipping them.
	///
	SpriteWrapV bool

	/// DisplayWait limits drawing to one DXYN per frame, emulating the
	/// original hardware waiting for vertical blank.
	///
	DisplayWait bool

	/// ClipSprites forces clipping at both edges regardless of the
	/// wrap flags.
	///
	ClipSprites bool

	/// CyclesPerFrame is how many instructions are dispatched per
	/// 60 Hz frame.
	///
	CyclesPerFrame uint
}

/// LegacyQuirks matches the original COSMAC VIP interpreter.
///
func LegacyQuirks() Quirks {
	return Quirks{
		LoadStoreIncrementsI: true,
		ShiftUsesVY:          true,
		Jump0UsesVX:          false,
		VFResetOnLogic:       true,
		SpriteWrapH:          false,
		SpriteWrapV:          false,
		DisplayWait:          true,
		ClipSprites:          true,
		CyclesPerFrame:       10,
	}
}

/// ModernQuirks matches the popular SUPER-CHIP 1.1 behavior found on
/// the HP-48 and in most later interpreters.
///
func ModernQuirks() Quirks {
	return Quirks{
		LoadStoreIncrementsI: false,
		ShiftUsesVY:          false,
		Jump0UsesVX:          true,
		VFResetOnLogic:       false,
		SpriteWrapH:          false,
		SpriteWrapV:          false,
		DisplayWait:          false,
		ClipSprites:          true,
		CyclesPerFrame:       30,
	}
}

/// OctoQuirks matches the runtime of the Octo assembler, which is the
/// de facto reference for XO-CHIP programs.
///
func OctoQuirks() Quirks {
	return Quirks{
		LoadStoreIncrementsI: true,
		ShiftUsesVY:          true,
		Jump0UsesVX:          false,
		VFResetOnLogic:       false,
		SpriteWrapH:          false,
		SpriteWrapV:          false,
		DisplayWait:          false,
		ClipSprites:          true,
		CyclesPerFrame:       200,
	}
}
