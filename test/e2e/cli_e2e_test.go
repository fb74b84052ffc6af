package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the binary and checks its observable behavior.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	binName := "bigcalc"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	// go test runs in test/e2e; build from the module root.
	build := exec.Command("go", "build", "-o", binPath, "./cmd/bigcalc")
	build.Dir = "../.."
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("failed to build bigcalc: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		env      []string
		stdin    string
		wantOut  string // case-insensitive substring
		wantCode int
	}{
		{name: "Addition", args: []string{"-q", "-e", "1 2 +"}, wantOut: "3"},
		{name: "Positional program", args: []string{"-q", "0xffffffff 0xffffffff *"}, wantOut: "18446744065119617025"},
		{name: "Hex", args: []string{"-q", "--hex", "-e", "1 64 <<"}, wantOut: "0x10000000000000000"},
		{name: "Help", args: []string{"--help"}, wantOut: "usage"},
		{name: "Version", args: []string{"--version"}, wantOut: "bigcalc"},
		{name: "Division by zero", args: []string{"-q", "-e", "1 0 /"}, wantOut: "division by zero", wantCode: 3},
		{name: "Unknown allocator", args: []string{"--alloc", "slab", "-e", "1"}, wantOut: "unknown allocator", wantCode: 4},
		{name: "Memory limit", args: []string{"-q", "--limit-words", "8", "-e", "1 4096 <<"}, wantOut: "memory error", wantCode: 5},
		{name: "Env program", env: []string{"BIGCALC_EXPR=2 3 *;4 4 +"}, args: []string{"-q"}, wantOut: "6\n8"},
		{name: "Dashboard with REPL", args: []string{"--tui", "--repl"}, wantOut: "--tui cannot be combined", wantCode: 4},
		{name: "REPL", args: []string{"--repl"}, stdin: "7 6 *\nexit\n", wantOut: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(append(os.Environ(), "NO_COLOR=1"), tt.env...)
			cmd.Stdin = strings.NewReader(tt.stdin)
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("running bigcalc: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}
			if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("output missing %q:\n%s", tt.wantOut, outStr)
			}
		})
	}
}
