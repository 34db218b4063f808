package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/philw07/pich8/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// The CHIP-8 virtual machine.
	///
	VM *chip8.CHIP_8

	/// The SDL window and renderer.
	///
	Window   *sdl.Window
	Renderer *sdl.Renderer

	/// Path of the currently loaded ROM; empty runs the boot program.
	///
	File string

	/// Structured logger for the host process.
	///
	logger *log.Logger
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var (
		dialectName = flag.String("dialect", "chip8", "instruction set to emulate (chip8/schip/xochip)")
		presetName  = flag.String("quirks", "", "quirk preset (legacy/modern/octo), defaults per dialect")
		cycles      = flag.Uint("cycles", 0, "instructions per 60Hz frame, 0 keeps the preset value")
		debug       = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	cfg := log.DefaultConfig()
	if *debug {
		cfg.Level = log.DebugLevel
	}
	logger = log.NewWithConfig(cfg)

	dialect, quirks, err := configure(*dialectName, *presetName)
	if err != nil {
		logger.Error("Invalid configuration", log.Err(err))
		os.Exit(1)
	}

	// create a new CHIP-8 virtual machine, must happen early!
	VM = chip8.NewVM(dialect, quirks)

	if *cycles > 0 {
		VM.SetCyclesPerFrame(*cycles)
	}

	// load the ROM passed on the command line, if any
	if flag.NArg() > 0 {
		File = flag.Arg(0)
	}
	Load()

	// initialize SDL or bail
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		logger.Error("SDL init failed", log.Err(err))
		os.Exit(1)
	}
	defer sdl.Quit()

	// create the main window and renderer or bail
	flags := uint32(sdl.WINDOW_OPENGL)
	if Window, Renderer, err = sdl.CreateWindowAndRenderer(550, 348, flags); err != nil {
		logger.Error("Window creation failed", log.Err(err))
		os.Exit(1)
	}
	defer Window.Destroy()

	// set the title
	Window.SetTitle("pich8 - " + VM.Dialect.String())

	// initialize subsystems
	InitScreen()
	InitAudio()
	InitFont()

	Logln("pich8 ready")
	Log("Press H for help")

	// refresh at the CHIP-8 frame rate
	video := time.NewTicker(time.Second / 60)
	defer video.Stop()

	// loop until window closed or user quit
	for ProcessEvents() {
		<-video.C

		VM.SetKeys(Keys)

		if !Paused {
			if err := VM.StepFrame(); err != nil {
				Logln("Emulation stopped:", err.Error())
				logger.Error("Emulation stopped", log.Err(err))

				// leave the machine inspectable
				Paused = true
			}

			// breakpoints pause the frame loop
			if VM.Break {
				Logln("Breakpoint", VM.Disassemble(VM.PC))
				Paused = true
			}
		}

		PumpAudio()
		Refresh()
	}
}

/// configure maps the command line names to a dialect and quirk
/// preset.
///
func configure(dialectName, presetName string) (chip8.Dialect, chip8.Quirks, error) {
	var dialect chip8.Dialect

	switch dialectName {
	case "chip8":
		dialect = chip8.DIALECT_CHIP_8
	case "schip":
		dialect = chip8.DIALECT_SUPER_CHIP
	case "xochip":
		dialect = chip8.DIALECT_XO_CHIP
	default:
		return 0, chip8.Quirks{}, fmt.Errorf("unknown dialect: %s", dialectName)
	}

	// every dialect has a natural preset
	quirks := chip8.LegacyQuirks()
	if dialect == chip8.DIALECT_SUPER_CHIP {
		quirks = chip8.ModernQuirks()
	} else if dialect == chip8.DIALECT_XO_CHIP {
		quirks = chip8.OctoQuirks()
	}

	switch presetName {
	case "":
	case "legacy":
		quirks = chip8.LegacyQuirks()
	case "modern":
		quirks = chip8.ModernQuirks()
	case "octo":
		quirks = chip8.OctoQuirks()
	default:
		return 0, chip8.Quirks{}, fmt.Errorf("unknown quirk preset: %s", presetName)
	}

	return dialect, quirks, nil
}

/// Load the current ROM file into the virtual machine, falling back
/// to the boot program.
///
func Load() {
	if File == "" {
		if err := VM.LoadROM(chip8.Dummy); err != nil {
			logger.Error("Boot program rejected", log.Err(err))
		}

		return
	}

	program, err := os.ReadFile(File)
	if err != nil {
		Logln("Unable to read ROM:", err.Error())
		File = ""
		Load()

		return
	}

	if err := VM.LoadROM(program); err != nil {
		Logln("Unable to load ROM:", err.Error())
		File = ""
		Load()

		return
	}

	logger.Info("Loaded ROM", log.String("file", File))
	Logln("Loaded", File)
}

/// LoadDialog asks the user for a ROM file and loads it.
///
func LoadDialog() {
	file, err := dialog.File().Filter("CHIP-8 ROMs", "ch8", "c8", "rom").Load()
	if err != nil {
		return
	}

	File = file
	Load()
}

/// SaveState writes a snapshot of the machine to a user-chosen file.
///
func SaveState() {
	file, err := dialog.File().Filter("pich8 state", "p8s").Save()
	if err != nil {
		return
	}

	if err := os.WriteFile(file, VM.Snapshot(), 0644); err != nil {
		Logln("Unable to save state:", err.Error())

		return
	}

	Logln("Saved state to", file)
}

/// LoadState restores a snapshot from a user-chosen file.
///
func LoadState() {
	file, err := dialog.File().Filter("pich8 state", "p8s").Load()
	if err != nil {
		return
	}

	data, err := os.ReadFile(file)
	if err != nil {
		Logln("Unable to read state:", err.Error())

		return
	}

	if err := VM.Restore(data); err != nil {
		Logln("Unable to restore state:", err.Error())

		return
	}

	Logln("Restored state from", file)
}

/// Refresh the window contents.
///
func Refresh() {
	Renderer.SetDrawColor(32, 42, 53, 255)
	Renderer.Clear()

	// frame various portions of the app
	Frame(8, 8, 322, 162)
	Frame(338, 8, 204, 162)
	Frame(8, 176, 146, 164)
	Frame(162, 176, 380, 164)

	// update the video screen and copy it
	RefreshScreen()
	CopyScreen(10, 10, 318, 158)

	// debug assembly, virtual registers and the log
	DebugAssembly(342, 12)
	DebugRegisters(12, 180)
	DebugLog(166, 180)

	// show the new frame
	Renderer.Present()
}

/// Frame a portion of the window.
///
func Frame(x, y, w, h int32) {
	Renderer.SetDrawColor(0, 0, 0, 255)
	Renderer.DrawLine(x, y, x+w, y)
	Renderer.DrawLine(x, y, x, y+h)

	// highlight
	Renderer.SetDrawColor(95, 112, 120, 255)
	Renderer.DrawLine(x+w, y, x+w, y+h)
	Renderer.DrawLine(x, y+h, x+w, y+h)
}
