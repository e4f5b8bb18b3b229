// Package git materializes pinned dependency sources with the git CLI.
package git

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/uibind/uibind/internal/core/domain"
	"github.com/uibind/uibind/internal/core/ports"
	"go.trai.ch/zerr"
)

// outputTailLines caps how much captured git output travels with an error.
const outputTailLines = 20

// Fetcher implements ports.Fetcher by shelling out to git. Pinned revisions
// are immutable, so there are no retries: a failure cannot resolve itself.
type Fetcher struct {
	Executor ports.Executor
	Logger   ports.Logger
}

// NewFetcher creates a new Fetcher running git through the given executor.
func NewFetcher(executor ports.Executor, logger ports.Logger) *Fetcher {
	return &Fetcher{Executor: executor, Logger: logger}
}

// Ensure makes dir an exact checkout of the pinned revision. A missing clone
// is created, a stale one fetched; the pin is then checked out detached with
// submodules and the resulting HEAD verified. A clone already sitting on the
// pin is left untouched.
func (f *Fetcher) Ensure(ctx context.Context, pin domain.Pin, dir string, out io.Writer) error {
	if err := pin.Validate(); err != nil {
		return err
	}

	if !cloneExists(dir) {
		if err := os.MkdirAll(filepath.Dir(dir), domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrStagingCreateFailed.Error()), "path", dir)
		}

		f.Logger.Info(fmt.Sprintf("cloning %s", pin.Name))
		if err := f.git(ctx, domain.ErrCloneFailed, pin, out, "", "clone", "--recurse-submodules", pin.Repo, dir); err != nil {
			return err
		}
	} else {
		if head, err := f.head(ctx, dir); err == nil && head == pin.Revision {
			f.Logger.Info(fmt.Sprintf("%s already at %s", pin.Name, shortRevision(pin.Revision)))
			return nil
		}

		f.Logger.Info(fmt.Sprintf("updating %s", pin.Name))
		if err := f.git(ctx, domain.ErrFetchFailed, pin, out, dir, "fetch", "origin"); err != nil {
			return err
		}
	}

	if err := f.git(ctx, domain.ErrCheckoutFailed, pin, out, dir, "checkout", "--detach", pin.Revision); err != nil {
		return err
	}

	if err := f.git(ctx, domain.ErrSubmoduleUpdateFailed, pin, out, dir, "submodule", "update", "--init", "--recursive"); err != nil {
		return err
	}

	head, err := f.head(ctx, dir)
	if err != nil {
		return err
	}
	if head != pin.Revision {
		err := zerr.With(domain.ErrRevisionMismatch, "dependency", pin.Name)
		err = zerr.With(err, "pinned", pin.Revision)
		return zerr.With(err, "actual", head)
	}

	f.Logger.Info(fmt.Sprintf("%s checked out at %s", pin.Name, shortRevision(pin.Revision)))
	return nil
}

// git runs one git subcommand and folds a failure into the given sentinel.
func (f *Fetcher) git(ctx context.Context, sentinel error, pin domain.Pin, out io.Writer, dir string, args ...string) error {
	cmd := domain.Command{
		Argv: append([]string{"git"}, args...),
		Dir:  dir,
	}

	res, err := f.Executor.Run(ctx, cmd, out)
	if err != nil {
		return zerr.With(zerr.Wrap(err, sentinel.Error()), "dependency", pin.Name)
	}
	if !res.Success() {
		gitErr := zerr.With(sentinel, "dependency", pin.Name)
		gitErr = zerr.With(gitErr, "command", cmd.String())
		gitErr = zerr.With(gitErr, "exit_code", res.ExitCode)
		if tail := res.Tail(outputTailLines); tail != "" {
			gitErr = zerr.With(gitErr, "output", tail)
		}
		return gitErr
	}

	return nil
}

// head returns the commit the checkout currently points at.
func (f *Fetcher) head(ctx context.Context, dir string) (string, error) {
	cmd := domain.Command{
		Argv: []string{"git", "rev-parse", "HEAD"},
		Dir:  dir,
	}

	res, err := f.Executor.Run(ctx, cmd, nil)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrRevisionMismatch.Error())
	}
	if !res.Success() {
		headErr := zerr.With(domain.ErrRevisionMismatch, "command", cmd.String())
		return "", zerr.With(headErr, "exit_code", res.ExitCode)
	}

	return strings.TrimSpace(string(res.Output)), nil
}

func cloneExists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
