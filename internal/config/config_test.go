package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/gofdsolver/pkg/solver"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "search.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeConfig(t, "node_limit: 42\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.EqualValues(t, 42, cfg.NodeLimit)
	assert.Equal(t, "none", cfg.Restart.Policy)
	assert.EqualValues(t, 32, cfg.Restart.Scale)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
stop_at_first: true
node_limit: 100
solution_limit: 5
fail_limit: 10
time_limit: 250ms
restart:
  policy: luby
  scale: 8
  after_solution: true
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.StopAtFirst)
	assert.EqualValues(t, 100, cfg.NodeLimit)
	assert.EqualValues(t, 5, cfg.SolutionLimit)
	assert.EqualValues(t, 10, cfg.FailLimit)
	d, err := cfg.Duration()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)
	assert.Equal(t, "luby", cfg.Restart.Policy)
	assert.EqualValues(t, 8, cfg.Restart.Scale)
	assert.True(t, cfg.Restart.AfterSolution)
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	path := writeConfig(t, "restart:\n  policy: fibonacci\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown restart policy")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, "time_limit: soon\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestApplyPlugsLimits(t *testing.T) {
	m := solver.NewModel()
	m.NewIntVar("x", 0, 1)
	m.NewIntVar("y", 0, 1)
	s := solver.NewSolver(m)

	cfg := Default()
	cfg.NodeLimit = 1
	require.NoError(t, cfg.Apply(s))

	sols, err := s.FindAllSolutions()
	require.NoError(t, err)
	assert.Empty(t, sols)
	assert.Equal(t, solver.MsgLimit, s.Search().StopReason())
}

func TestApplyRestartAfterSolution(t *testing.T) {
	m := solver.NewModel()
	x := m.NewIntVar("x", 0, 1)
	y := m.NewIntVar("y", 0, 1)
	m.Post(solver.NotEqual(x, y))
	ng := solver.NewSolutionNogoods([]*solver.IntVar{x, y})
	m.Post(ng)
	s := solver.NewSolver(m)
	s.Search().PlugSearchMonitor(solver.RecordNogoodsOnSolutions(ng))

	cfg := Default()
	cfg.Restart.AfterSolution = true
	require.NoError(t, cfg.Apply(s))

	sols, err := s.FindAllSolutions()
	require.NoError(t, err)
	assert.Len(t, sols, 2)
	assert.EqualValues(t, 2, s.Measures().RestartCount)
}
