package predictor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// lookPath resolves a tool binary, mapping a missing binary to
// ErrNotInstalled so the runner can report unavailable instead of
// failed.
func lookPath(bin string) (string, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotInstalled, bin)
	}
	return path, nil
}

// writeTempFASTA writes a single-record FASTA file for a tool
// invocation and returns its path. The caller removes it.
func writeTempFASTA(name, seq string) (string, error) {
	f, err := os.CreateTemp("", name+"-in-*.fa")
	if err != nil {
		return "", fmt.Errorf("create temp input: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	b.WriteByte('>')
	b.WriteString(name)
	b.WriteByte('\n')
	for len(seq) > 0 {
		n := 60
		if n > len(seq) {
			n = len(seq)
		}
		b.WriteString(seq[:n])
		b.WriteByte('\n')
		seq = seq[n:]
	}
	if _, err := f.WriteString(b.String()); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write temp input: %w", err)
	}
	return f.Name(), nil
}

// runCommand executes a tool binary and returns its stdout. A non-zero
// exit wraps stderr into the error so the failure reason is
// reportable. dir sets the working directory for tools that load model
// files relative to their own location.
func runCommand(ctx context.Context, bin string, args []string, stdin, dir string) (string, error) {
	path, err := lookPath(bin)
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s: %s", bin, msg)
	}
	return stdout.String(), nil
}
