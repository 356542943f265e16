package main

import (
	"testing"

	"github.com/msandoval/grepo/internal/report"
)

func TestSplitNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want []string
	}{
		{"alpha", []string{"alpha"}},
		{"alpha,beta", []string{"alpha", "beta"}},
		{" alpha , beta ", []string{"alpha", "beta"}},
		{"alpha,,beta", []string{"alpha", "beta"}},
		{"", nil},
		{" , ", nil},
	}

	for _, tt := range tests {
		got := splitNames(tt.arg)
		if len(got) != len(tt.want) {
			t.Errorf("splitNames(%q) = %v, want %v", tt.arg, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitNames(%q)[%d] = %q, want %q", tt.arg, i, got[i], tt.want[i])
			}
		}
	}
}

func TestBranchCell(t *testing.T) {
	t.Parallel()

	if got := branchCell(report.Row{Repo: "alpha", Item: "main"}); got != "main" {
		t.Errorf("branchCell = %q, want %q", got, "main")
	}
	if got := branchCell(report.Row{Repo: "alpha", Error: "boom"}); got != "error: boom" {
		t.Errorf("branchCell = %q, want %q", got, "error: boom")
	}
}
