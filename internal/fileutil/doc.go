// Package fileutil provides directory scanning and unit test discovery.
//
// ScanDirectory lists the regular files of a directory that satisfy a name
// predicate. FindUnitTests builds on it to locate HDL unit test files in a
// working directory:
//
//	tests, err := fileutil.FindUnitTests(".")
//	if err != nil {
//	    return err
//	}
//	for _, test := range tests {
//	    fmt.Println(test) // e.g. "tb_adder.sv"
//	}
//
// A file is a unit test when its name starts with one of UnitTestPrefixes
// (tb_, ts_, testbench_, testsuite_, unit_test_) or ends with one of
// UnitTestSuffixes (_tb.sv, _testbench.v, ...). Discovery never recurses
// into subdirectories and returns each file at most once.
//
// All results are sorted so runs are deterministic.
package fileutil
