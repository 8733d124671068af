package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/harrison/svut/internal/models"
)

// RunCommands executes a test's commands sequentially.
// It stops at the first failure and returns ErrCommandFailed (wrapped)
// together with the results gathered so far; the last result is the
// failing command. onStart, if non-nil, is called before each command.
func RunCommands(ctx context.Context, runner CommandRunner, cmds []models.Command, onStart func(models.Command)) ([]models.CommandResult, error) {
	if len(cmds) == 0 {
		return nil, nil
	}

	results := make([]models.CommandResult, 0, len(cmds))

	for _, cmd := range cmds {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		if onStart != nil {
			onStart(cmd)
		}

		start := time.Now()
		err := runner.Run(ctx, cmd)
		duration := time.Since(start)

		results = append(results, models.CommandResult{
			Command:  cmd,
			Error:    err,
			Passed:   err == nil,
			Duration: duration,
		})

		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			return results, fmt.Errorf("%w: %q failed after %v: %v",
				ErrCommandFailed, cmd.String(), duration.Round(time.Millisecond), err)
		}
	}

	return results, nil
}
