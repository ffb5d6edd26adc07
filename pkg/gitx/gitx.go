// Package gitx scripts the commit-and-push sequence against the git CLI:
// check the working tree, stage everything, commit, push to each configured
// remote in order, then show the recent history.
package gitx

import (
	"fmt"

	"github.com/pkg/errors"

	mallctl "github.com/jiffoo/mallctl/pkg"
)

type Service struct {
	Runner *mallctl.Runner
	Config mallctl.GitConfig
}

func NewService(runner *mallctl.Runner, config mallctl.GitConfig) *Service {
	return &Service{Runner: runner, Config: config}
}

// env forces a non-interactive editor onto every child git process so a
// configured vim/commit template cannot stall the sequence.
func (s *Service) env() map[string]string {
	return map[string]string{
		"EDITOR":     s.Config.Editor,
		"VISUAL":     s.Config.Editor,
		"GIT_EDITOR": s.Config.Editor,
	}
}

// HasChanges reports whether the working tree has anything to commit.
func (s *Service) HasChanges() (bool, error) {
	result := s.Runner.Run(mallctl.Step{
		Description: "check working tree status",
		Argv:        []string{"git", "status", "--porcelain"},
		Env:         s.env(),
	})
	if result.Failed() {
		return false, errors.Errorf("git status failed with exit status %d: %s", result.ExitCode, result.TrimmedStderr())
	}
	return result.TrimmedStdout() != "", nil
}

// PushSequence is the ordered command list executed once the tree is known
// to be dirty.
func (s *Service) PushSequence(message string) *mallctl.Sequence {
	seq := mallctl.NewSequence("push")

	seq.Add(mallctl.Step{
		Description: "stage all changes",
		Argv:        []string{"git", "add", "-A"},
		Env:         s.env(),
	})
	seq.Add(mallctl.Step{
		Description: "commit",
		Argv:        []string{"git", "commit", "-m", message},
		Env:         s.env(),
	})
	for _, remote := range s.Config.Remotes {
		seq.Add(mallctl.Step{
			Description: fmt.Sprintf("push to %s", remote),
			Argv:        []string{"git", "push", remote, s.Config.Branch},
			Env:         s.env(),
		})
	}
	seq.Add(mallctl.Step{
		Description: "show recent commits",
		Argv:        []string{"git", "log", "--oneline", "-5"},
		Env:         s.env(),
	})

	return seq
}

// Push runs the whole sequence. A clean tree is a successful no-op.
func (s *Service) Push(message string) error {
	changed, err := s.HasChanges()
	if err != nil {
		return err
	}
	if !changed {
		s.Runner.Log.Info("no changes to commit")
		return nil
	}

	_, err = s.PushSequence(message).Run(s.Runner)
	return err
}
