// Package compilecheck implements the end-to-end validator of spec.md
// §4.4: write emitted Java source to a temp file, invoke javac against the
// mined jars, and report whether the result compiles cleanly. It is not
// consumed by any other core component — it exists purely so a caller can
// verify a plan's acceptance criterion (spec.md §8 property 6).
package compilecheck

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Result reports the outcome of a single javac invocation.
type Result struct {
	Success bool
	Output  string // combined stdout+stderr
}

// Run writes source to a temporary Main.java, invokes `javac -cp <jars>
// Main.java`, and returns whether it exited 0 with empty error output.
// jars may be empty (no extra classpath entries beyond the JDK).
func Run(ctx context.Context, source string, jars []string) (Result, error) {
	dir, err := os.MkdirTemp("", "jcraft-compilecheck-")
	if err != nil {
		return Result{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	srcPath := filepath.Join(dir, "Main.java")
	if err := os.WriteFile(srcPath, []byte(source), 0644); err != nil {
		return Result{}, fmt.Errorf("write Main.java: %w", err)
	}

	args := []string{}
	if len(jars) > 0 {
		args = append(args, "-cp", strings.Join(jars, string(os.PathListSeparator)))
	}
	args = append(args, srcPath)

	cmd := exec.CommandContext(ctx, "javac", args...)
	cmd.Dir = dir

	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	runErr := cmd.Run()
	out := combined.String()

	success := runErr == nil && strings.TrimSpace(out) == ""
	return Result{Success: success, Output: out}, nil
}
