package health

import (
	"context"
	"os"
)

// StateDirChecker checks that the local state directory exists and is
// writable. The session store lives here; if writes fail, login and token
// refresh persistence fail with it.
type StateDirChecker struct {
	dir string
}

// NewStateDirChecker creates a new state directory checker.
func NewStateDirChecker(dir string) *StateDirChecker {
	return &StateDirChecker{dir: dir}
}

// Name returns the name of this health check.
func (c *StateDirChecker) Name() string {
	return "state-dir"
}

// Check verifies the state directory exists and accepts writes.
func (c *StateDirChecker) Check(ctx context.Context) *Result {
	info, err := os.Stat(c.dir)
	if err != nil {
		return Unhealthy("state directory missing").
			WithDetail("path", c.dir).
			WithDetail("error", err.Error())
	}
	if !info.IsDir() {
		return Unhealthy("state path is not a directory").
			WithDetail("path", c.dir)
	}

	probe, err := os.CreateTemp(c.dir, ".health-*")
	if err != nil {
		return Unhealthy("state directory is not writable").
			WithDetail("path", c.dir).
			WithDetail("error", err.Error())
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)

	result := Healthy("state directory writable").WithDetail("path", c.dir)
	if mode := info.Mode().Perm(); mode&0o077 != 0 {
		result = Degraded("state directory permissions are broader than owner-only").
			WithDetail("path", c.dir).
			WithDetail("mode", mode.String())
	}
	return result
}
