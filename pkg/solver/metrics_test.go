package solver

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMetricsMirrorMeasures(t *testing.T) {
	m, _, _ := neqModel()
	s := NewSolver(m)

	reg := prometheus.NewRegistry()
	sm, err := NewSearchMetrics(s.Search(), reg)
	require.NoError(t, err)
	s.Search().PlugSearchMonitor(sm)

	_, err = s.FindAllSolutions()
	require.NoError(t, err)

	meas := s.Measures()
	assert.Equal(t, float64(meas.NodeCount), testutil.ToFloat64(sm.nodes))
	assert.Equal(t, float64(meas.SolutionCount), testutil.ToFloat64(sm.solutions))
	assert.Equal(t, float64(meas.FailCount), testutil.ToFloat64(sm.fails))
	assert.Equal(t, float64(meas.RestartCount), testutil.ToFloat64(sm.restarts))
}

func TestSearchMetricsRegisterOnce(t *testing.T) {
	m, _, _ := neqModel()
	s := NewSolver(m)

	reg := prometheus.NewRegistry()
	_, err := NewSearchMetrics(s.Search(), reg)
	require.NoError(t, err)
	_, err = NewSearchMetrics(s.Search(), reg)
	assert.Error(t, err, "duplicate registration must fail")
}
