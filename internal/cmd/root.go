package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for svut
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "svut [test-file]...",
		Short: "SystemVerilog unit test runner",
		Long: `SVUT runs SystemVerilog and Verilog unit tests with Icarus Verilog
or Verilator.

Without an explicit test selection, every file in the current directory
named like a unit test (tb_*, ts_*, testbench_*, testsuite_*, unit_test_*,
*_tb.sv, *_ts.v, *_testbench.sv, ...) is compiled and run in turn.
Each test stops at its first failing command.

Configuration is loaded from .svut/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  svut                                  # run every unit test found here
  svut -test tb_adder.sv tb_fifo.sv     # run selected tests
  svut -sim verilator -main tb_main.cpp
  svut -define "WIDTH=8;SIM" -include ../src
  svut -vpi "-M. -mMyVPI" -gui
  svut -dry-run                         # print the commands only

Single-dash long flags (-test, -sim, -dry-run, ...) are accepted as
aliases of their double-dash forms.`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		RunE:    runCommand,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addRunFlags(cmd)

	return cmd
}
