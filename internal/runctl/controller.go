// Package runctl implements component C8, the run controller that
// sequences every other component into one scan-and-resolve pass:
// validate config -> open cache -> walk -> fingerprint -> group -> for
// each group, select a survivor, gate every other member, execute the
// configured action -> emit reports -> close cache -> final summary. The
// phase-sequencing shape (one cancellation context threaded through every
// stage, atomic counters assembled into a final result) is grounded on the
// teacher's cli.Execute / pipeline orchestration, generalized from a single
// discovery-then-generate pass to this package's longer discover ->
// fingerprint -> group -> resolve pipeline.
package runctl

import (
	"context"
	"log/slog"
	"os"

	"github.com/morroware/DupeFInder/internal/action"
	"github.com/morroware/DupeFInder/internal/cache"
	"github.com/morroware/DupeFInder/internal/fingerprint"
	"github.com/morroware/DupeFInder/internal/gate"
	"github.com/morroware/DupeFInder/internal/group"
	"github.com/morroware/DupeFInder/internal/keep"
	"github.com/morroware/DupeFInder/internal/model"
	"github.com/morroware/DupeFInder/internal/runconfig"
	"github.com/morroware/DupeFInder/internal/runerr"
	"github.com/morroware/DupeFInder/internal/walker"
)

// Reporter consumes the outcome stream and the final summary. Report
// writers (CSV, JSON, email) and the interactive progress display all
// implement this so the controller never depends on a concrete output
// format.
type Reporter interface {
	Outcome(model.ActionOutcome)
	Summary(model.RunSummary)
}

// Prompter decides, interactively, whether a single target should proceed
// once the gate has cleared it. Implemented by internal/cli's StdinPrompter
// (a line-based y/N question); a nil Prompter means --interactive was not requested and
// every gate-cleared target proceeds automatically.
type Prompter interface {
	Confirm(target model.FileRecord, survivor model.FileRecord, group model.DigestGroup) bool
}

// Controller runs one full scan-and-resolve pass.
type Controller struct {
	cfg       *runconfig.Config
	reporters []Reporter
	prompter  Prompter
	logger    *slog.Logger
}

// New builds a Controller for cfg. Reporters are notified of every
// ActionOutcome as it is produced and of the final RunSummary.
func New(cfg *runconfig.Config, prompter Prompter, reporters ...Reporter) *Controller {
	return &Controller{
		cfg:       cfg,
		reporters: reporters,
		prompter:  prompter,
		logger:    slog.Default().With("component", "runctl"),
	}
}

// Run executes the full pipeline. If ctx is cancelled mid-run, Run stops
// as soon as the in-flight stage notices and returns a RunSummary with
// Cancelled set plus runerr.Cancelled().
func (c *Controller) Run(ctx context.Context) (model.RunSummary, error) {
	var summary model.RunSummary

	var cacheStore *cache.Store
	if c.cfg.CacheFile != "" {
		algo := c.fingerprintAlgorithm()
		store, err := cache.Open(c.cfg.CacheFile, algo, c.cfg.CacheRetention)
		if err != nil {
			return summary, err
		}
		cacheStore = store
		defer cacheStore.Close()
	}

	excluder := c.buildExcluder()
	if err := excluder.err; err != nil {
		return summary, err
	}

	candidates, walkStats, err := walker.Walk(ctx, walker.Options{
		Roots:          c.cfg.Roots,
		Excluder:       excluder.ignorer,
		Patterns:       walker.NewPatternFilter(c.cfg.Patterns),
		MinSize:        c.cfg.MinSize,
		MaxSize:        c.cfg.MaxSize,
		MaxDepth:       c.cfg.MaxDepth,
		FollowSymlinks: c.cfg.FollowSymlinks,
		IncludeHidden:  c.cfg.IncludeHidden,
		IncludeEmpty:   c.cfg.IncludeEmpty,
	})
	if err != nil {
		return summary, err
	}

	fingerprinted, fpStats := fingerprint.Run(ctx, candidates, fingerprint.Options{
		Fast:        c.cfg.Fast,
		StrongBits:  c.cfg.StrongBits,
		Threads:     c.cfg.Threads,
		FileTimeout: c.cfg.FileTimeout,
		Cache:       cacheStore,
	})

	var similarity group.SimilarityProvider
	if c.cfg.Fuzzy {
		similarity = group.SizeProximitySimilarity{}
	}
	groups, groupStats := group.Collect(fingerprinted, group.Options{
		Similarity: similarity,
		Threshold:  c.cfg.Threshold,
	})

	summary.FilesDiscovered = walkStats.FilesDiscovered
	summary.FilesFingerprinted = fpStats.FilesFingerprinted
	summary.HashErrors = fpStats.HashErrors
	summary.GroupsFound = uint64(len(groups))
	for _, g := range groups {
		summary.BytesWasted += g.WastedBytes()
	}
	if groupStats.Collisions > 0 {
		c.logger.Warn("digest collisions detected", "count", groupStats.Collisions)
	}

	if ctx.Err() != nil {
		summary.Cancelled = true
		if saveErr := SaveResumePoint(c.cfg.ResumeFile, groups); saveErr != nil {
			c.logger.Warn("failed to persist resume point", "error", saveErr)
		}
		c.notifySummary(summary)
		return summary, runerr.Cancelled()
	}

	summary, err = c.resolveGroups(ctx, groups, summary)
	if err != nil {
		c.notifySummary(summary)
		return summary, err
	}

	_ = os.Remove(c.cfg.ResumeFile)
	c.notifySummary(summary)
	return summary, nil
}

// ResumeFrom re-enters the pipeline at the keep-select stage with a
// previously persisted group list (spec.md's --resume flag), skipping the
// walk/fingerprint/group phases entirely.
func (c *Controller) ResumeFrom(ctx context.Context, groups []model.DigestGroup) (model.RunSummary, error) {
	var summary model.RunSummary
	summary.GroupsFound = uint64(len(groups))
	for _, g := range groups {
		summary.BytesWasted += g.WastedBytes()
	}

	summary, err := c.resolveGroups(ctx, groups, summary)
	if err != nil {
		c.notifySummary(summary)
		return summary, err
	}

	_ = os.Remove(c.cfg.ResumeFile)
	c.notifySummary(summary)
	return summary, nil
}

// resolveGroups runs the select/gate/verify/prompt/execute sequence over
// every group, the shared core of Run and ResumeFrom.
func (c *Controller) resolveGroups(ctx context.Context, groups []model.DigestGroup, summary model.RunSummary) (model.RunSummary, error) {
	selector := keep.Selector{
		KeepPath:         c.cfg.KeepPath,
		Newest:           c.cfg.KeepNewest,
		Oldest:           c.cfg.KeepOldest,
		SmartDelete:      c.cfg.SmartDelete,
		LocationPriority: c.cfg.LocationPriority,
	}

	// ForceSystem lifts the system-root refusal only in interactive runs,
	// where every target is still confirmed through the prompter.
	gateway := gate.New(gate.Options{
		SkipSystem:  c.cfg.SkipSystem,
		ForceSystem: c.cfg.ForceSystem && c.cfg.Interactive,
		Verify:      c.cfg.Verify,
		Fast:        c.cfg.Fast,
		Action:      toActionKind(c.cfg.Action),
	})

	executor := action.New(action.Options{
		Action:        toActionKind(c.cfg.Action),
		DryRun:        c.cfg.DryRun,
		BackupDir:     c.cfg.BackupDir,
		QuarantineDir: c.cfg.QuarantineDir,
	})

	for i, g := range groups {
		select {
		case <-ctx.Done():
			summary.Cancelled = true
			if saveErr := SaveResumePoint(c.cfg.ResumeFile, groups[i:]); saveErr != nil {
				c.logger.Warn("failed to persist resume point", "error", saveErr)
			}
			return summary, runerr.Cancelled()
		default:
		}

		decision := selector.Select(g)
		var survivor model.FileRecord
		for _, m := range g.Members {
			if m.Path == decision.SurvivorPath {
				survivor = m
				break
			}
		}

		for _, member := range g.Members {
			if member.Path == survivor.Path {
				continue
			}

			summary.ActionsAttempted++
			gd := gateway.Check(member, survivor)
			if !gd.Allowed {
				outcome := model.ActionOutcome{
					GroupID:       g.GroupID,
					TargetPath:    member.Path,
					Intended:      toActionKind(c.cfg.Action),
					Effected:      model.ActionSkip,
					DryRun:        c.cfg.DryRun,
					FailureReason: gd.Reason.Error(),
				}
				c.notifyOutcome(outcome)
				continue
			}

			if gd.RequiresByteCheck {
				identical, err := gate.VerifyIdentical(member.Path, survivor.Path)
				if err != nil || !identical {
					reason := "byte verification failed"
					if err != nil {
						reason = err.Error()
					}
					outcome := model.ActionOutcome{
						GroupID:       g.GroupID,
						TargetPath:    member.Path,
						Intended:      toActionKind(c.cfg.Action),
						Effected:      model.ActionSkip,
						DryRun:        c.cfg.DryRun,
						FailureReason: reason,
					}
					c.notifyOutcome(outcome)
					continue
				}
			}

			if c.prompter != nil && !c.cfg.DryRun {
				if !c.prompter.Confirm(member, survivor, g) {
					outcome := model.ActionOutcome{
						GroupID:    g.GroupID,
						TargetPath: member.Path,
						Intended:   toActionKind(c.cfg.Action),
						Effected:   model.ActionSkip,
						DryRun:     c.cfg.DryRun,
					}
					c.notifyOutcome(outcome)
					continue
				}
			}

			outcome := executor.Apply(ctx, member.Path, survivor.Path, member.Size)
			outcome.GroupID = g.GroupID
			if outcome.Succeeded() {
				summary.ActionsSucceeded++
				summary.BytesReclaimed += outcome.BytesReclaimed
			}
			c.notifyOutcome(outcome)
		}
	}

	return summary, nil
}

func (c *Controller) notifyOutcome(o model.ActionOutcome) {
	for _, r := range c.reporters {
		r.Outcome(o)
	}
}

func (c *Controller) notifySummary(s model.RunSummary) {
	for _, r := range c.reporters {
		r.Summary(s)
	}
}

func (c *Controller) fingerprintAlgorithm() model.Algorithm {
	if c.cfg.Fast {
		return model.AlgoFastXXH3
	}
	switch c.cfg.StrongBits {
	case 256:
		return model.AlgoBlake2b256
	case 512:
		return model.AlgoBlake2b512
	default:
		return model.AlgoBlake2b128
	}
}

type excluderResult struct {
	ignorer walker.Ignorer
	err     error
}

func (c *Controller) buildExcluder() excluderResult {
	var ignorers []walker.Ignorer
	if len(c.cfg.Excludes) > 0 {
		ignorers = append(ignorers, walker.NewPathExcluder(c.cfg.Excludes))
	}
	if c.cfg.ExcludeListFile != "" {
		m, err := walker.NewExcludeListMatcher(c.cfg.ExcludeListFile)
		if err != nil {
			return excluderResult{err: err}
		}
		ignorers = append(ignorers, m)
	}
	return excluderResult{ignorer: walker.NewCompositeIgnorer(ignorers...)}
}

func toActionKind(mode runconfig.ActionMode) model.ActionKind {
	switch mode {
	case runconfig.ActionModeTrash:
		return model.ActionTrash
	case runconfig.ActionModeHardlink:
		return model.ActionHardlink
	case runconfig.ActionModeQuarantine:
		return model.ActionQuarantine
	default:
		return model.ActionDelete
	}
}
