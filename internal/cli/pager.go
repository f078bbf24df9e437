package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/spf13/viper"
	"golang.org/x/term"
)

const defaultPager = "less -FRSX"

// pager pipes preview output through an external command.
type pager struct {
	enabled bool
	command string
}

func pagerFromConfig(v *viper.Viper) pager {
	return pager{
		enabled: v.GetBool("pager.enabled"),
		command: strings.TrimSpace(v.GetString("pager.command")),
	}
}

// resolve picks the configured command, then $PAGER, then less.
func (p pager) resolve() string {
	if p.command != "" {
		return p.command
	}
	if env := strings.TrimSpace(os.Getenv("PAGER")); env != "" {
		return env
	}
	return defaultPager
}

// run calls write against the pager when out is a terminal, else against out
// directly. A pager that fails to start falls back to out. Quitting the pager
// before all output is read is not an error.
func (p pager) run(ctx context.Context, out, errOut io.Writer, write func(io.Writer) error) error {
	outFile, ok := out.(*os.File)
	if !p.enabled || !ok || !term.IsTerminal(int(outFile.Fd())) {
		return write(out)
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", p.resolve())
	cmd.Stdout = outFile
	cmd.Stderr = errOut
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return write(out)
	}
	if err := cmd.Start(); err != nil {
		return write(out)
	}
	writeErr := write(stdin)
	_ = stdin.Close()
	waitErr := cmd.Wait()
	if writeErr != nil && !errors.Is(writeErr, syscall.EPIPE) {
		return writeErr
	}
	return waitErr
}
