package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDir creates a working directory with the given files and an
// install directory holding svut_h.sv.
func newTestDir(t *testing.T, files ...string) (workDir, home string) {
	t.Helper()
	workDir = t.TempDir()
	home = t.TempDir()
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(workDir, f), []byte("module tb; endmodule\n"), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(home, "svut_h.sv"), []byte("`define SVUT\n"), 0644))
	t.Setenv("SVUT_HOME", home)
	return workDir, home
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(NormalizeArgs(args))
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRun_DryRunIcarus(t *testing.T) {
	workDir, _ := newTestDir(t, "tb_adder.sv", "adder.sv")

	output, err := execute(t, "-workdir", workDir, "-dry-run")
	require.NoError(t, err)

	assert.Contains(t, output, "dry-run: tb_adder.sv")
	assert.Contains(t, output, "rm -f icarus.out\n")
	assert.Contains(t, output, "iverilog -g2012 -Wall -o icarus.out tb_adder.sv\n")
	assert.Contains(t, output, "vvp icarus.out\n")

	_, statErr := os.Stat(filepath.Join(workDir, "icarus.out"))
	assert.True(t, os.IsNotExist(statErr), "dry run must not create icarus.out")

	// header is synchronized even in dry run
	got, err := os.ReadFile(filepath.Join(workDir, "svut_h.sv"))
	require.NoError(t, err)
	assert.Equal(t, "`define SVUT\n", string(got))
	assert.Contains(t, output, "Copy newest version of svut_h.sv")
}

func TestRun_DryRunAllOptions(t *testing.T) {
	workDir, _ := newTestDir(t, "files.f", "wave.gtkw")

	output, err := execute(t,
		"-workdir", workDir,
		"-test", "tb_alu.sv",
		"-define", "A=1;B;;C=3",
		"-include", "../src", "inc",
		"-vpi", "-M. -mMyVPI",
		"-gui",
		"-dry-run",
	)
	require.NoError(t, err)

	assert.Contains(t, output, "iverilog -g2012 -Wall -o icarus.out -DA=1 -DB -DC=3 -f files.f -I ../src inc tb_alu.sv\n")
	assert.Contains(t, output, "vvp -M. -mMyVPI icarus.out -lxt\n")
	assert.Contains(t, output, "gtkwave *.lxt wave.gtkw &\n")
}

func TestRun_DryRunVerilator(t *testing.T) {
	workDir, _ := newTestDir(t)

	output, err := execute(t, "-workdir", workDir, "-sim", "verilator", "-test", "./dir/my_test.sv", "-main", "tb_main.cpp", "-dry-run")
	require.NoError(t, err)

	assert.Contains(t, output, "--top-module my_test ./dir/my_test.sv tb_main.cpp\n")
	assert.Contains(t, output, "make -j -C build -f Vmy_test.mk Vmy_test\n")
	assert.Contains(t, output, "build/Vmy_test\n")
}

func TestRun_PositionalTests(t *testing.T) {
	workDir, _ := newTestDir(t)

	output, err := execute(t, "-workdir", workDir, "-dry-run", "tb_pos.v")
	require.NoError(t, err)
	assert.Contains(t, output, "dry-run: tb_pos.v")
}

func TestRun_ConfigFile(t *testing.T) {
	workDir, _ := newTestDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(workDir, ".svut"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".svut", "config.yaml"),
		[]byte("simulator: verilator\ndefines: FROM_FILE\n"), 0644))

	output, err := execute(t, "-workdir", workDir, "-test", "tb_cfg.sv", "-dry-run")
	require.NoError(t, err)
	assert.Contains(t, output, "rm -fr build")
	assert.Contains(t, output, "-DFROM_FILE")

	// flags win over the file
	output, err = execute(t, "-workdir", workDir, "-test", "tb_cfg.sv", "-sim", "icarus", "-dry-run")
	require.NoError(t, err)
	assert.Contains(t, output, "rm -f icarus.out")
	assert.Contains(t, output, "-DFROM_FILE")
}

func TestRun_ExplicitConfigFile(t *testing.T) {
	workDir, _ := newTestDir(t)
	cfgPath := filepath.Join(t.TempDir(), "svut.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("simulator: verilator\n"), 0644))

	output, err := execute(t, "-workdir", workDir, "-config", cfgPath, "-test", "tb_cfg.sv", "-dry-run")
	require.NoError(t, err)
	assert.Contains(t, output, "rm -fr build")

	// a named file that does not exist is an error, not a silent default
	_, err = execute(t, "-workdir", workDir, "-config", filepath.Join(workDir, "missing.yaml"), "-test", "tb_cfg.sv", "-dry-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRun_UnsupportedSimulator(t *testing.T) {
	workDir, _ := newTestDir(t, "tb_adder.sv")

	output, err := execute(t, "-workdir", workDir, "-sim", "questa")

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, output, "simulator not supported")
	assert.NotContains(t, output, "Start @")
}

func TestRun_UnsupportedExtension(t *testing.T) {
	workDir, _ := newTestDir(t)

	output, err := execute(t, "-workdir", workDir, "-test", "tb_adder.vhd")

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, output, "failed to find supported extension")
}

func TestRun_InvalidConfiguration(t *testing.T) {
	workDir, _ := newTestDir(t)

	_, err := execute(t, "-workdir", workDir, "-log-level", "loud")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid configuration"))

	_, err = execute(t, "-workdir", filepath.Join(workDir, "missing"))
	require.Error(t, err)
}

func TestRun_NoTests(t *testing.T) {
	workDir, _ := newTestDir(t, "adder.sv")

	output, err := execute(t, "-workdir", workDir)
	require.NoError(t, err)
	assert.NotContains(t, output, "Start @")
}
