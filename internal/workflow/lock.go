package workflow

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created in the output directory for the duration of a run.
const LockFileName = ".subgif.lock"

// ErrOutputLocked reports that another run holds the output directory.
var ErrOutputLocked = errors.New("output directory is in use by another run")

// acquireOutputLock takes the exclusive lock for outputDir without waiting.
func acquireOutputLock(outputDir string) (*flock.Flock, error) {
	path := filepath.Join(outputDir, LockFileName)
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOutputLocked, outputDir)
	}
	return lock, nil
}
