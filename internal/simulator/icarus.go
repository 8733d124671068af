package simulator

import (
	"github.com/harrison/svut/internal/models"
)

const (
	// IcarusOutput is the compiled simulation image written by iverilog
	IcarusOutput = "icarus.out"
	// WaveSaveFile is the GTKWave save file picked up from the working directory
	WaveSaveFile = "wave.gtkw"
	// waveDumpPattern matches the LXT dumps vvp writes in GUI mode
	waveDumpPattern = "*.lxt"
)

// Icarus builds commands for Icarus Verilog.
type Icarus struct {
	opts Options
}

// NewIcarus creates an Icarus builder.
func NewIcarus(opts Options) *Icarus {
	return &Icarus{opts: opts}
}

// Name returns "icarus".
func (b *Icarus) Name() string {
	return "icarus"
}

// Build returns, in order:
//
//	rm -f icarus.out
//	iverilog -g2012 -Wall -o icarus.out [-D...] [-f dotfiles] [-I dirs] <test>
//	vvp [vpi args] icarus.out [-lxt]
//	gtkwave *.lxt [wave.gtkw] &          (GUI only)
//
// The stale image is removed first so a failed compile cannot rerun an old one.
func (b *Icarus) Build(test string) ([]models.Command, error) {
	if err := checkExtension(test); err != nil {
		return nil, err
	}

	vpiArgs, err := splitVPI(b.opts.VPI)
	if err != nil {
		return nil, err
	}

	cmds := []models.Command{
		models.NewCommand("rm", "-f", IcarusOutput),
	}

	compile := []string{"-g2012", "-Wall", "-o", IcarusOutput}
	compile = append(compile, DefineFlags(b.opts.Defines)...)
	compile = append(compile, dotfileArgs(b.opts.WorkDir, b.opts.Dotfiles)...)
	if len(b.opts.Includes) > 0 {
		compile = append(compile, "-I")
		compile = append(compile, b.opts.Includes...)
	}
	compile = append(compile, test)
	cmds = append(cmds, models.NewCommand("iverilog", compile...))

	run := append([]string{}, vpiArgs...)
	run = append(run, IcarusOutput)
	if b.opts.GUI {
		run = append(run, "-lxt")
	}
	cmds = append(cmds, models.NewCommand("vvp", run...))

	if b.opts.GUI {
		viewer := []string{waveDumpPattern}
		if fileExists(resolve(b.opts.WorkDir, WaveSaveFile)) {
			viewer = append(viewer, WaveSaveFile)
		}
		cmds = append(cmds, models.Command{Program: "gtkwave", Args: viewer, Background: true})
	}

	return cmds, nil
}
