package action

import (
	"context"
	"os"

	"github.com/morroware/DupeFInder/internal/model"
	"github.com/morroware/DupeFInder/internal/runerr"
)

// Options configures an Executor.
type Options struct {
	Action        model.ActionKind
	DryRun        bool
	BackupDir     string // empty disables pre-action backup
	QuarantineDir string // required when Action == model.ActionQuarantine
}

// Executor applies the configured action to one gate-cleared target.
type Executor struct {
	opts Options
}

// New builds an Executor.
func New(opts Options) *Executor {
	return &Executor{opts: opts}
}

// Apply executes (or, in dry-run mode, simulates) the configured action
// against target, whose survivor in the same group is survivorPath.
func (e *Executor) Apply(ctx context.Context, target, survivorPath string, targetSize uint64) model.ActionOutcome {
	outcome := model.ActionOutcome{
		TargetPath: target,
		Intended:   e.opts.Action,
		DryRun:     e.opts.DryRun,
	}

	if e.opts.DryRun {
		outcome.Effected = model.ActionSkip
		return outcome
	}

	if e.opts.BackupDir != "" {
		dst := BackupPath(e.opts.BackupDir, target)
		if err := copyWithRetry(ctx, target, dst); err != nil {
			outcome.FailureReason = err.Error()
			return outcome
		}
		outcome.BackupPath = dst
	}

	var err error
	switch e.opts.Action {
	case model.ActionDelete:
		err = os.Remove(target)
	case model.ActionTrash:
		var dest string
		dest, err = trashFile(target)
		if err == nil {
			outcome.BackupPath = dest
		}
	case model.ActionHardlink:
		err = replaceWithHardlink(target, survivorPath)
	case model.ActionQuarantine:
		dest := quarantinePath(e.opts.QuarantineDir, target)
		if mkErr := os.MkdirAll(e.opts.QuarantineDir, 0o755); mkErr != nil {
			err = mkErr
		} else if renErr := os.Rename(target, dest); renErr != nil {
			if copyErr := copyStream(target, dest); copyErr != nil {
				err = copyErr
			} else if rmErr := os.Remove(target); rmErr != nil {
				err = rmErr
			}
		}
	default:
		err = runerr.New(runerr.CodeActionIO, "unknown action kind")
	}

	if err != nil {
		outcome.FailureReason = err.Error()
		return outcome
	}

	outcome.Effected = e.opts.Action
	outcome.BytesReclaimed = targetSize
	return outcome
}
