package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the state lock.
var ErrLocked = errors.New("seen-set is locked by another run")

// Lock takes an exclusive advisory lock on statePath+".lock", waiting up to
// timeout. The returned func releases it.
func Lock(ctx context.Context, statePath string, timeout time.Duration) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(statePath), 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}
	fl := flock.New(statePath + ".lock")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ok, err := fl.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("locking %s: %w", fl.Path(), err)
	}
	if !ok {
		return nil, fmt.Errorf("locking %s: %w", fl.Path(), ErrLocked)
	}
	return fl.Unlock, nil
}
