package executil

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/gopak/ytmsearch/internal/config"
)

type Result struct {
	Stdout string
	Stderr string
	Code   int
}

// Run executes c.Binary with c.Args followed by args. No shell is involved.
// A binary that cannot be started yields Code -1 and the start error in Stderr.
func Run(ctx context.Context, c config.Command, args ...string) Result {
	argv := append(append([]string{}, c.Args...), args...)
	cmd := exec.CommandContext(ctx, c.Binary, argv...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	code := 0
	if err != nil {
		var e *exec.ExitError
		if errors.As(err, &e) {
			code = e.ExitCode()
		} else {
			code = -1
			if errb.Len() == 0 {
				errb.WriteString(err.Error())
			}
		}
	}
	return Result{Stdout: out.String(), Stderr: errb.String(), Code: code}
}
