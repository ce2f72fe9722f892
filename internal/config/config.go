// Package config loads search configuration from yaml files and applies it
// to a solver by plugging the matching limit and restart monitors.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gitrdm/gofdsolver/pkg/solver"
)

// RestartConfig selects a restart policy for the search.
type RestartConfig struct {
	// Policy is "none", "luby" or "geometric".
	Policy string `yaml:"policy"`
	// Scale is the Luby multiplier (default 32).
	Scale int64 `yaml:"scale"`
	// Base and Factor parameterize the geometric schedule
	// (defaults 100 and 1.5).
	Base   int64   `yaml:"base"`
	Factor float64 `yaml:"factor"`
	// AfterSolution restarts the search after each solution.
	AfterSolution bool `yaml:"after_solution"`
}

// SearchConfig is the yaml-loadable description of one resolution's
// harness: limits, restarts and logging.
type SearchConfig struct {
	StopAtFirst   bool          `yaml:"stop_at_first"`
	NodeLimit     int64         `yaml:"node_limit"`
	SolutionLimit int64         `yaml:"solution_limit"`
	FailLimit     int64         `yaml:"fail_limit"`
	TimeLimit     string        `yaml:"time_limit"`
	Restart       RestartConfig `yaml:"restart"`
	LogLevel      string        `yaml:"log_level"`
}

// Default returns the zero configuration: no limits, no restarts.
func Default() *SearchConfig {
	return &SearchConfig{
		Restart:  RestartConfig{Policy: "none", Scale: 32, Base: 100, Factor: 1.5},
		LogLevel: "info",
	}
}

// Load reads a SearchConfig from a yaml file, filling unset fields with
// defaults.
func Load(path string) (*SearchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read search config %s", path)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse search config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid search config %s", path)
	}
	return cfg, nil
}

// Validate rejects malformed fields.
func (c *SearchConfig) Validate() error {
	switch c.Restart.Policy {
	case "", "none", "luby", "geometric":
	default:
		return errors.Errorf("unknown restart policy %q", c.Restart.Policy)
	}
	if c.Restart.Policy == "luby" && c.Restart.Scale <= 0 {
		return errors.New("luby restart requires a positive scale")
	}
	if c.Restart.Policy == "geometric" && (c.Restart.Base <= 0 || c.Restart.Factor < 1) {
		return errors.New("geometric restart requires base > 0 and factor >= 1")
	}
	if _, err := c.Duration(); err != nil {
		return err
	}
	return nil
}

// Duration parses the time limit; the zero value means no limit.
func (c *SearchConfig) Duration() (time.Duration, error) {
	if c.TimeLimit == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TimeLimit)
	if err != nil {
		return 0, errors.Wrapf(err, "parse time limit %q", c.TimeLimit)
	}
	return d, nil
}

// Apply plugs the configured monitors into the solver's driver.
func (c *SearchConfig) Apply(s *solver.Solver) error {
	loop := s.Search()
	if c.NodeLimit > 0 {
		loop.PlugSearchMonitor(solver.NewNodeLimit(loop, c.NodeLimit))
	}
	if c.SolutionLimit > 0 {
		loop.PlugSearchMonitor(solver.NewSolutionLimit(loop, c.SolutionLimit))
	}
	if c.FailLimit > 0 {
		loop.PlugSearchMonitor(solver.NewFailLimit(loop, c.FailLimit))
	}
	d, err := c.Duration()
	if err != nil {
		return err
	}
	if d > 0 {
		loop.PlugSearchMonitor(solver.NewTimeLimit(loop, d))
	}
	switch c.Restart.Policy {
	case "luby":
		loop.PlugSearchMonitor(solver.NewRestartMonitor(loop, solver.LubyPolicy{Scale: c.Restart.Scale}))
	case "geometric":
		loop.PlugSearchMonitor(solver.NewRestartMonitor(loop, solver.GeometricPolicy{
			Base:   c.Restart.Base,
			Factor: c.Restart.Factor,
		}))
	}
	loop.RestartAfterEachSolution(c.Restart.AfterSolution)
	return nil
}
