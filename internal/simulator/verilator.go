package simulator

import (
	"path/filepath"
	"strings"

	"github.com/harrison/svut/internal/models"
)

// VerilatorBuildDir is the --Mdir output directory, removed before each build.
const VerilatorBuildDir = "build"

var verilatorBaseFlags = []string{
	"-Wall", "--trace", "--Mdir", VerilatorBuildDir,
	"+1800-2017ext+sv", "+1800-2005ext+v",
	"-Wno-STMTDLY", "-Wno-UNUSED", "-Wno-UNDRIVEN", "-Wno-PINCONNECTEMPTY",
	"-Wpedantic", "-Wno-VARHIDDEN", "-Wno-lint",
}

// Verilator builds commands for Verilator.
type Verilator struct {
	opts Options
}

// NewVerilator creates a Verilator builder.
func NewVerilator(opts Options) *Verilator {
	return &Verilator{opts: opts}
}

// Name returns "verilator".
func (b *Verilator) Name() string {
	return "verilator"
}

// ModuleName derives the top module name from a test path: the base name
// up to its first dot. "./dir/my_test.sv" gives "my_test".
func ModuleName(test string) string {
	base := filepath.Base(test)
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}

// Build returns, in order:
//
//	rm -fr build
//	verilator <flags> [-D...] [-f dotfiles] [+incdir+dir...] -cc --exe --build -j --top-module <name> <test> <main>
//	make -j -C build -f V<name>.mk V<name>
//	build/V<name>
func (b *Verilator) Build(test string) ([]models.Command, error) {
	if err := checkExtension(test); err != nil {
		return nil, err
	}

	name := ModuleName(test)

	cmds := []models.Command{
		models.NewCommand("rm", "-fr", VerilatorBuildDir),
	}

	compile := append([]string{}, verilatorBaseFlags...)
	compile = append(compile, DefineFlags(b.opts.Defines)...)
	compile = append(compile, dotfileArgs(b.opts.WorkDir, b.opts.Dotfiles)...)
	for _, inc := range b.opts.Includes {
		compile = append(compile, "+incdir+"+inc)
	}
	compile = append(compile, "-cc", "--exe", "--build", "-j", "--top-module", name, test)
	if b.opts.Main != "" {
		compile = append(compile, b.opts.Main)
	}
	cmds = append(cmds, models.NewCommand("verilator", compile...))

	model := "V" + name
	cmds = append(cmds,
		models.NewCommand("make", "-j", "-C", VerilatorBuildDir, "-f", model+".mk", model),
		models.NewCommand(VerilatorBuildDir+"/"+model),
	)

	return cmds, nil
}
