package models

import "testing"

func results(codes ...int) []TestResult {
	out := make([]TestResult, len(codes))
	for i, c := range codes {
		out[i] = TestResult{Test: "tb.sv", ExitCode: c}
	}
	return out
}

func TestComputeExitCode(t *testing.T) {
	tests := []struct {
		name    string
		results []TestResult
		policy  ExitPolicy
		want    int
	}{
		{"no tests", nil, ExitPolicyLast, ExitSuccess},
		{"no tests strict", nil, ExitPolicyAll, ExitSuccess},
		{"last passes after failure", results(ExitFailure, ExitSuccess), ExitPolicyLast, ExitSuccess},
		{"last fails", results(ExitSuccess, ExitFailure), ExitPolicyLast, ExitFailure},
		{"all pass", results(ExitSuccess, ExitSuccess), ExitPolicyLast, ExitSuccess},
		{"strict earlier failure", results(ExitFailure, ExitSuccess), ExitPolicyAll, ExitFailure},
		{"strict all pass", results(ExitSuccess, ExitSuccess), ExitPolicyAll, ExitSuccess},
		{"unknown policy behaves like last", results(ExitFailure, ExitSuccess), ExitPolicy("other"), ExitSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeExitCode(tt.results, tt.policy); got != tt.want {
				t.Errorf("ComputeExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRunSummaryFailed(t *testing.T) {
	s := RunSummary{Results: []TestResult{
		{Test: "tb_a.sv", ExitCode: ExitFailure},
		{Test: "tb_b.sv", ExitCode: ExitSuccess},
		{Test: "tb_c.sv", ExitCode: ExitFailure},
	}}

	failed := s.Failed()
	if len(failed) != 2 || failed[0].Test != "tb_a.sv" || failed[1].Test != "tb_c.sv" {
		t.Errorf("Failed() = %+v", failed)
	}
	if s.Results[1].Failed() {
		t.Error("passing result reported as failed")
	}
}
