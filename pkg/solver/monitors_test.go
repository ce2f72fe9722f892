package solver

import (
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// traceMonitor records every hook invocation into a shared event log.
type traceMonitor struct {
	name   string
	events *[]string
}

func (m *traceMonitor) log(hook string) { *m.events = append(*m.events, m.name+":"+hook) }

func (m *traceMonitor) BeforeInitialize()         { m.log("beforeInitialize") }
func (m *traceMonitor) AfterInitialize()          { m.log("afterInitialize") }
func (m *traceMonitor) BeforeInitialPropagation() { m.log("beforeInitialPropagation") }
func (m *traceMonitor) AfterInitialPropagation()  { m.log("afterInitialPropagation") }
func (m *traceMonitor) BeforeOpenNode()           { m.log("beforeOpenNode") }
func (m *traceMonitor) AfterOpenNode()            { m.log("afterOpenNode") }
func (m *traceMonitor) BeforeDownLeftBranch()     { m.log("beforeDownLeftBranch") }
func (m *traceMonitor) AfterDownLeftBranch()      { m.log("afterDownLeftBranch") }
func (m *traceMonitor) BeforeDownRightBranch()    { m.log("beforeDownRightBranch") }
func (m *traceMonitor) AfterDownRightBranch()     { m.log("afterDownRightBranch") }
func (m *traceMonitor) BeforeUpBranch()           { m.log("beforeUpBranch") }
func (m *traceMonitor) AfterUpBranch()            { m.log("afterUpBranch") }
func (m *traceMonitor) BeforeRestart()            { m.log("beforeRestart") }
func (m *traceMonitor) AfterRestart()             { m.log("afterRestart") }
func (m *traceMonitor) BeforeClose()              { m.log("beforeClose") }
func (m *traceMonitor) AfterClose()               { m.log("afterClose") }
func (m *traceMonitor) AfterInterrupt()           { m.log("afterInterrupt") }
func (m *traceMonitor) OnSolution()               { m.log("onSolution") }

func TestMonitorListRejectsDuplicates(t *testing.T) {
	m := NewModel()
	m.NewIntVar("x", 0, 1)
	l := NewSearchLoop(m, nil)

	var events []string
	tm := &traceMonitor{name: "a", events: &events}
	l.PlugSearchMonitor(tm)
	before := l.monitors.Len()
	l.PlugSearchMonitor(tm)
	assert.Equal(t, before, l.monitors.Len(), "re-plugging is a no-op")
}

func TestMonitorDispatchOrder(t *testing.T) {
	var events []string
	list := NewSearchMonitorList(logrus.StandardLogger())
	list.Add(&traceMonitor{name: "a", events: &events})
	list.Add(&traceMonitor{name: "b", events: &events})

	list.beforeOpenNode()
	list.afterOpenNode()

	require.Equal(t, []string{
		"a:beforeOpenNode",
		"b:beforeOpenNode",
		"b:afterOpenNode",
		"a:afterOpenNode",
	}, events, "before in insertion order, after in reverse order")
}

// panicMonitor fails on every node opening.
type panicMonitor struct{}

func (panicMonitor) BeforeOpenNode() { panic("monitor bug") }
func (panicMonitor) AfterOpenNode()  {}

func TestMonitorPanicIsSwallowed(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar("x", 0, 1)
	y := m.NewIntVar("y", 0, 1)
	m.Post(NotEqual(x, y))
	s := NewSolver(m)
	s.Search().PlugSearchMonitor(panicMonitor{})

	sols, err := s.FindAllSolutions()
	require.NoError(t, err, "a failing monitor must not disturb the search")
	assert.Len(t, sols, 2)
}

func TestMonitorPairing(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar("x", 0, 1)
	y := m.NewIntVar("y", 0, 1)
	m.Post(NotEqual(x, y))
	s := NewSolver(m)

	var events []string
	s.Search().PlugSearchMonitor(&traceMonitor{name: "t", events: &events})
	_, err := s.FindAllSolutions()
	require.NoError(t, err)

	// Every before must be closed by its matching after before the next
	// before fires. onSolution and afterInterrupt are unpaired by design.
	open := ""
	for _, ev := range events {
		var hook string
		fmt.Sscanf(ev, "t:%s", &hook)
		switch {
		case hook == "onSolution" || hook == "afterInterrupt":
			continue
		case len(hook) > 6 && hook[:6] == "before":
			require.Empty(t, open, "nested before hooks at %v", ev)
			open = hook[6:]
		case len(hook) > 5 && hook[:5] == "after":
			require.Equal(t, open, hook[5:], "mismatched pairing at %v", ev)
			open = ""
		}
	}
	assert.Empty(t, open, "a before hook was never closed")
}
