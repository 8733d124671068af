package fileutil

import "strings"

// UnitTestPrefixes are the file name prefixes that mark a unit test.
var UnitTestPrefixes = []string{"tb_", "ts_", "testbench_", "testsuite_", "unit_test_"}

// UnitTestSuffixes are the file name endings that mark a unit test.
var UnitTestSuffixes = []string{
	"_unit_test.v", "_unit_test.sv",
	"_testbench.v", "_testbench.sv",
	"_testsuite.v", "_testsuite.sv",
	"_tb.v", "_tb.sv",
	"_ts.v", "_ts.sv",
}

// IsUnitTestFile reports whether name follows the unit test naming convention.
// Prefixes match regardless of extension; the extension is checked later,
// when commands are built for the file.
func IsUnitTestFile(name string) bool {
	for _, prefix := range UnitTestPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	for _, suffix := range UnitTestSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// FindUnitTests returns the unit test files directly inside dir, as names
// relative to dir. Each file is reported once even when it matches both a
// prefix and a suffix. An empty result is not an error.
func FindUnitTests(dir string) ([]string, error) {
	result, err := ScanDirectory(dir, ScanOptions{
		Match:    IsUnitTestFile,
		Relative: true,
	})
	if err != nil {
		return nil, err
	}
	return result.Files, nil
}
