// Package solver provides finite-domain constraint solving.
// This file implements search monitors: external observers plugged into the
// driver that react to transitions. Monitors implement only the hook
// interfaces they care about; the list groups them per hook kind so a
// transition only touches monitors that actually listen to it.
package solver

import (
	"github.com/sirupsen/logrus"
)

// SearchMonitor is the marker interface for anything plugged into the
// driver. A monitor additionally implements any of the hook interfaces
// below. Monitors may keep a reference to the driver to call Restart or
// ReachLimit, but they must not crash the search: a panicking hook is
// logged and swallowed.
type SearchMonitor interface{}

// MonitorInitialize observes the INIT transition.
type MonitorInitialize interface {
	BeforeInitialize()
	AfterInitialize()
}

// MonitorInitialPropagation observes the root fixpoint computation.
type MonitorInitialPropagation interface {
	BeforeInitialPropagation()
	AfterInitialPropagation()
}

// MonitorOpenNode observes node openings.
type MonitorOpenNode interface {
	BeforeOpenNode()
	AfterOpenNode()
}

// MonitorDownBranch observes downward branching, left and right.
type MonitorDownBranch interface {
	BeforeDownLeftBranch()
	AfterDownLeftBranch()
	BeforeDownRightBranch()
	AfterDownRightBranch()
}

// MonitorUpBranch observes upward backtracking.
type MonitorUpBranch interface {
	BeforeUpBranch()
	AfterUpBranch()
}

// MonitorRestart observes restarts.
type MonitorRestart interface {
	BeforeRestart()
	AfterRestart()
}

// MonitorClose observes the closing of the search.
type MonitorClose interface {
	BeforeClose()
	AfterClose()
}

// MonitorInterrupt observes interruptions.
type MonitorInterrupt interface {
	AfterInterrupt()
}

// MonitorSolution observes recorded solutions.
type MonitorSolution interface {
	OnSolution()
}

// SearchMonitorList multiplexes hook dispatch over the plugged monitors.
// Before hooks run in insertion order, after hooks in reverse order, so the
// first plugged monitor (the measures) both opens and closes every
// transition.
type SearchMonitorList struct {
	all []SearchMonitor
	log logrus.FieldLogger

	initialize  []MonitorInitialize
	initialProp []MonitorInitialPropagation
	openNode    []MonitorOpenNode
	downBranch  []MonitorDownBranch
	upBranch    []MonitorUpBranch
	restart     []MonitorRestart
	close       []MonitorClose
	interrupt   []MonitorInterrupt
	solution    []MonitorSolution
}

// NewSearchMonitorList creates an empty list logging monitor failures to log.
func NewSearchMonitorList(log logrus.FieldLogger) *SearchMonitorList {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SearchMonitorList{log: log}
}

// Contains returns true if m is already plugged.
func (l *SearchMonitorList) Contains(m SearchMonitor) bool {
	for _, x := range l.all {
		if x == m {
			return true
		}
	}
	return false
}

// Add plugs a monitor, sorting it into the per-hook slices.
func (l *SearchMonitorList) Add(m SearchMonitor) {
	l.all = append(l.all, m)
	if x, ok := m.(MonitorInitialize); ok {
		l.initialize = append(l.initialize, x)
	}
	if x, ok := m.(MonitorInitialPropagation); ok {
		l.initialProp = append(l.initialProp, x)
	}
	if x, ok := m.(MonitorOpenNode); ok {
		l.openNode = append(l.openNode, x)
	}
	if x, ok := m.(MonitorDownBranch); ok {
		l.downBranch = append(l.downBranch, x)
	}
	if x, ok := m.(MonitorUpBranch); ok {
		l.upBranch = append(l.upBranch, x)
	}
	if x, ok := m.(MonitorRestart); ok {
		l.restart = append(l.restart, x)
	}
	if x, ok := m.(MonitorClose); ok {
		l.close = append(l.close, x)
	}
	if x, ok := m.(MonitorInterrupt); ok {
		l.interrupt = append(l.interrupt, x)
	}
	if x, ok := m.(MonitorSolution); ok {
		l.solution = append(l.solution, x)
	}
}

// Len returns the number of plugged monitors.
func (l *SearchMonitorList) Len() int { return len(l.all) }

// run invokes one hook, logging and swallowing a panic so a monitor cannot
// crash the search.
func (l *SearchMonitorList) run(hook string, f func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.WithField("hook", hook).Errorf("search monitor failure ignored: %v", r)
		}
	}()
	f()
}

func (l *SearchMonitorList) beforeInitialize() {
	for _, m := range l.initialize {
		l.run("beforeInitialize", m.BeforeInitialize)
	}
}

func (l *SearchMonitorList) afterInitialize() {
	for i := len(l.initialize) - 1; i >= 0; i-- {
		l.run("afterInitialize", l.initialize[i].AfterInitialize)
	}
}

func (l *SearchMonitorList) beforeInitialPropagation() {
	for _, m := range l.initialProp {
		l.run("beforeInitialPropagation", m.BeforeInitialPropagation)
	}
}

func (l *SearchMonitorList) afterInitialPropagation() {
	for i := len(l.initialProp) - 1; i >= 0; i-- {
		l.run("afterInitialPropagation", l.initialProp[i].AfterInitialPropagation)
	}
}

func (l *SearchMonitorList) beforeOpenNode() {
	for _, m := range l.openNode {
		l.run("beforeOpenNode", m.BeforeOpenNode)
	}
}

func (l *SearchMonitorList) afterOpenNode() {
	for i := len(l.openNode) - 1; i >= 0; i-- {
		l.run("afterOpenNode", l.openNode[i].AfterOpenNode)
	}
}

func (l *SearchMonitorList) beforeDownLeftBranch() {
	for _, m := range l.downBranch {
		l.run("beforeDownLeftBranch", m.BeforeDownLeftBranch)
	}
}

func (l *SearchMonitorList) afterDownLeftBranch() {
	for i := len(l.downBranch) - 1; i >= 0; i-- {
		l.run("afterDownLeftBranch", l.downBranch[i].AfterDownLeftBranch)
	}
}

func (l *SearchMonitorList) beforeDownRightBranch() {
	for _, m := range l.downBranch {
		l.run("beforeDownRightBranch", m.BeforeDownRightBranch)
	}
}

func (l *SearchMonitorList) afterDownRightBranch() {
	for i := len(l.downBranch) - 1; i >= 0; i-- {
		l.run("afterDownRightBranch", l.downBranch[i].AfterDownRightBranch)
	}
}

func (l *SearchMonitorList) beforeUpBranch() {
	for _, m := range l.upBranch {
		l.run("beforeUpBranch", m.BeforeUpBranch)
	}
}

func (l *SearchMonitorList) afterUpBranch() {
	for i := len(l.upBranch) - 1; i >= 0; i-- {
		l.run("afterUpBranch", l.upBranch[i].AfterUpBranch)
	}
}

func (l *SearchMonitorList) beforeRestart() {
	for _, m := range l.restart {
		l.run("beforeRestart", m.BeforeRestart)
	}
}

func (l *SearchMonitorList) afterRestart() {
	for i := len(l.restart) - 1; i >= 0; i-- {
		l.run("afterRestart", l.restart[i].AfterRestart)
	}
}

func (l *SearchMonitorList) beforeClose() {
	for _, m := range l.close {
		l.run("beforeClose", m.BeforeClose)
	}
}

func (l *SearchMonitorList) afterClose() {
	for i := len(l.close) - 1; i >= 0; i-- {
		l.run("afterClose", l.close[i].AfterClose)
	}
}

func (l *SearchMonitorList) afterInterrupt() {
	for _, m := range l.interrupt {
		l.run("afterInterrupt", m.AfterInterrupt)
	}
}

func (l *SearchMonitorList) onSolution() {
	for _, m := range l.solution {
		l.run("onSolution", m.OnSolution)
	}
}
