// Package solver provides finite-domain constraint solving.
// This file implements the search loop driver: a flattened representation of
// recursive tree search, dispatched as a state machine. Once the root
// fixpoint is reached, decisions are taken to continue propagation and find
// solutions or detect fails; the driver also owns the world backups and
// rollbacks on the trail, the backtracking system.
package solver

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// searchState is the tag selecting the next transition of the loop.
type searchState int8

const (
	stateInit searchState = iota
	stateInitialPropagation
	stateOpenNode
	stateDownLeftBranch
	stateDownRightBranch
	stateUpBranch
	stateRestart
	stateResume
)

// Termination reasons. Exactly one is recorded per launch.
const (
	MsgLimit      = "a limit has been reached"
	MsgRoot       = "the entire search space has been explored"
	MsgCut        = "applying the cut leads to a failure"
	MsgFirstSol   = "stop at first solution"
	MsgInit       = "failure encountered during initial propagation"
	MsgSearchInit = "search strategy detects inconsistency"
)

// ErrNotInitialized reports a Launch on a driver that is not in its initial
// state. Reset the driver, or respect one of the call configurations
// FindSolution / FindAllSolutions / FindOptimalSolution.
var ErrNotInitialized = errors.New("the search has not been initialized")

// SearchLoop guides the search over the implicit tree of decisions. It owns
// the state tag, the decision chain and the counters; it shares the trail,
// the propagation engine, the strategy and the monitors with the enclosing
// solver.
//
// The driver is strictly single threaded and cooperative: no transition
// blocks, Interrupt is the only sanctioned way to stop, and both Interrupt
// and Restart are safe to call from any monitor hook.
type SearchLoop struct {
	model *Model
	trail Trail
	log   logrus.FieldLogger

	strategy  Strategy
	objective *ObjectiveManager
	measures  *Measures
	monitors  *SearchMonitorList

	// timeStamp increases on every branching transition and on reset, so
	// delta consumers such as solution recorders can detect whether the
	// world changed since they last looked.
	timeStamp int

	nextState           searchState
	alive               bool
	interrupted         bool
	stopReason          string
	rootWorld           int
	searchWorld         int
	jumpTo              int
	hasReachedLimit     bool
	stopAtFirstSolution bool
	stateAfterSolution  searchState
	stateAfterFail      searchState

	// root is the per-driver sentinel terminating the decision chain.
	root     Decision
	decision Decision

	// err holds a structural failure (an invalid world pop) surfaced by
	// Launch; contradictions never land here.
	err error
}

// NewSearchLoop creates a driver over the model. The measures are created
// and plugged as the first monitor. log may be nil, in which case the
// standard logrus logger is used.
func NewSearchLoop(model *Model, log logrus.FieldLogger) *SearchLoop {
	if log == nil {
		log = logrus.StandardLogger()
	}
	l := &SearchLoop{
		model:              model,
		trail:              model.Trail(),
		log:                log,
		objective:          NewSatisfactionManager(),
		measures:           NewMeasures(),
		monitors:           NewSearchMonitorList(log),
		nextState:          stateInit,
		rootWorld:          -1,
		searchWorld:        -1,
		jumpTo:             1,
		stateAfterSolution: stateUpBranch,
		stateAfterFail:     stateUpBranch,
		root:               &rootDecision{},
	}
	l.decision = l.root
	l.monitors.Add(l.measures)
	return l
}

// SetStrategy replaces the branching strategy. Valid only before Launch or
// after Reset.
func (l *SearchLoop) SetStrategy(s Strategy) { l.strategy = s }

// Strategy returns the current branching strategy.
func (l *SearchLoop) Strategy() Strategy { return l.strategy }

// SetObjectiveManager installs the objective manager and, for optimization
// policies, declares the objective on the measures.
func (l *SearchLoop) SetObjectiveManager(om *ObjectiveManager) {
	l.objective = om
	if om.IsOptimization() {
		l.measures.DeclareObjective()
	}
}

// ObjectiveManager returns the current objective manager.
func (l *SearchLoop) ObjectiveManager() *ObjectiveManager { return l.objective }

// Measures returns the driver's measures.
func (l *SearchLoop) Measures() *Measures { return l.measures }

// Model returns the model the driver searches over.
func (l *SearchLoop) Model() *Model { return l.model }

// TimeStamp returns the current branching stamp.
func (l *SearchLoop) TimeStamp() int { return l.timeStamp }

// StopReason returns the reason passed to the first Interrupt of the last
// launch: one of the Msg constants when the driver or a limit stopped the
// search, the error text after a structural failure, the caller's own
// reason for an external Interrupt, or the empty string while running.
func (l *SearchLoop) StopReason() string { return l.stopReason }

// CurrentDecision returns the top of the decision chain.
func (l *SearchLoop) CurrentDecision() Decision { return l.decision }

// CurrentDepth walks the decision chain and returns its length.
func (l *SearchLoop) CurrentDepth() int {
	d := 0
	for tmp := l.decision; tmp != l.root; tmp = tmp.Previous() {
		d++
	}
	return d
}

// PlugSearchMonitor appends a monitor unless it is already plugged.
// Plugging the same monitor twice is a no-op.
func (l *SearchLoop) PlugSearchMonitor(m SearchMonitor) {
	if l.monitors.Contains(m) {
		l.log.Warn("the search monitor already exists and is ignored")
		return
	}
	l.monitors.Add(m)
}

// RestartAfterEachSolution selects whether finding a solution restarts the
// search from the search world instead of backtracking.
func (l *SearchLoop) RestartAfterEachSolution(does bool) {
	if does {
		l.stateAfterSolution = stateRestart
	} else {
		l.stateAfterSolution = stateUpBranch
	}
}

// RestartAfterEachFail selects whether a fail restarts the search from the
// search world instead of backtracking.
func (l *SearchLoop) RestartAfterEachFail(does bool) {
	if does {
		l.stateAfterFail = stateRestart
	} else {
		l.stateAfterFail = stateUpBranch
	}
}

// OverridePreviousWorld makes the next up branch pop gap worlds instead of
// one. Backjumping strategies use this; the gap resets to one after use.
func (l *SearchLoop) OverridePreviousWorld(gap int) { l.jumpTo = gap }

// HasReachedLimit returns true once a limit monitor stopped the search.
func (l *SearchLoop) HasReachedLimit() bool { return l.hasReachedLimit }

// ReachLimit records that a limit was hit and interrupts the search.
// Limit monitors call this from their after hooks.
func (l *SearchLoop) ReachLimit() {
	l.hasReachedLimit = true
	l.Interrupt(MsgLimit)
}

// Interrupt forces the search to stop: the current transition finishes, no
// further transition runs, and the loop proceeds to close. Idempotent; a
// second call does not re-fire AfterInterrupt.
func (l *SearchLoop) Interrupt(reason string) {
	if l.interrupted {
		return
	}
	l.interrupted = true
	l.stopReason = reason
	l.log.WithField("reason", reason).Debug("search interruption")
	l.nextState = stateResume
	l.alive = false
	l.monitors.afterInterrupt()
}

// ForceAlive overrides the liveness flag, for callers re-entering the loop
// after an external pause. The caller must set a proper next state first.
func (l *SearchLoop) ForceAlive(b bool) { l.alive = b }

// Restart sets the following action of the search to be a restart. Safe
// from any monitor hook; a restart requested mid-transition is honored
// before the next transition runs.
func (l *SearchLoop) Restart() { l.nextState = stateRestart }

// Launch begins solving and returns once the search closed. Fails with
// ErrNotInitialized unless the driver is in its initial state. A structural
// trail failure is returned; contradictions and limits never surface here.
func (l *SearchLoop) Launch(stopAtFirst bool) error {
	if l.nextState != stateInit {
		return errors.Wrap(ErrNotInitialized,
			"be sure you are respecting one of these call configurations: "+
				"FindSolution ( NextSolution )* | FindAllSolutions | FindOptimalSolution")
	}
	l.stopAtFirstSolution = stopAtFirst
	l.loop()
	return l.err
}

// Reset enables solving the problem another time: it backtracks up to the
// root world, clears the decision chain and the objective manager, resets
// the measures and parks the model on a no-op propagation engine.
// Idempotent when no resolution ran.
func (l *SearchLoop) Reset() {
	if l.rootWorld < 0 {
		return
	}
	l.nextState = stateInit
	if err := l.trail.WorldPopUntil(l.rootWorld); err != nil {
		l.log.WithError(err).Error("reset could not restore the root world")
	}
	for l.decision != l.root {
		tmp := l.decision
		l.decision = tmp.Previous()
		tmp.Free()
	}
	l.objective.Reset()
	l.objective = NewSatisfactionManager()
	l.timeStamp++
	l.rootWorld = -1
	l.searchWorld = -1
	l.jumpTo = 1
	l.hasReachedLimit = false
	l.interrupted = false
	l.stopReason = ""
	l.stopAtFirstSolution = false
	l.err = nil
	l.model.SetEngine(NoPropagationEngine{})
	l.measures.Reset()
}

// loop is the main dispatch: one iteration reads the state tag, fires the
// matching before hooks, runs the transition, fires the after hooks and
// re-checks liveness. After the loop exits the search closes.
func (l *SearchLoop) loop() {
	l.alive = true
	for l.alive {
		switch l.nextState {
		case stateInit:
			l.monitors.beforeInitialize()
			l.initialize()
			l.monitors.afterInitialize()
		case stateInitialPropagation:
			l.monitors.beforeInitialPropagation()
			l.initialPropagation()
			l.monitors.afterInitialPropagation()
		case stateOpenNode:
			l.monitors.beforeOpenNode()
			l.openNode()
			l.monitors.afterOpenNode()
		case stateDownLeftBranch:
			l.timeStamp++
			l.monitors.beforeDownLeftBranch()
			l.downLeftBranch()
			l.monitors.afterDownLeftBranch()
		case stateDownRightBranch:
			l.timeStamp++
			l.monitors.beforeDownRightBranch()
			l.downRightBranch()
			l.monitors.afterDownRightBranch()
		case stateUpBranch:
			l.monitors.beforeUpBranch()
			l.upBranch()
			l.monitors.afterUpBranch()
		case stateRestart:
			l.monitors.beforeRestart()
			l.restartSearch()
			l.monitors.afterRestart()
		case stateResume:
			// Dispatching RESUME means the external caller did not set a
			// state before re-entering; leave the loop.
			l.alive = false
		}
	}
	l.monitors.beforeClose()
	l.close()
	l.monitors.afterClose()
}

// initialize records the root world, just before the beginning of search.
func (l *SearchLoop) initialize() {
	l.rootWorld = l.trail.WorldIndex()
	l.nextState = stateInitialPropagation
}

// initialPropagation runs the root fixpoint and checks root feasibility.
// Two worlds are pushed so that restarts can rewind to the state right
// after the fixpoint rather than to the state before it.
func (l *SearchLoop) initialPropagation() {
	l.trail.WorldPush()
	if err := l.model.Engine().Propagate(); err != nil {
		l.measures.incFailCount()
		l.Interrupt(MsgInit)
		return
	}
	l.trail.WorldPush()
	l.searchWorld = l.trail.WorldIndex()
	l.nextState = stateOpenNode
}

// openNode computes the next decision or records a solution.
func (l *SearchLoop) openNode() {
	d, err := l.strategy.GetDecision()
	if err != nil {
		l.Interrupt(MsgSearchInit)
		return
	}
	if d == nil {
		// Every decision variable is instantiated: the node is a solution.
		l.recordSolution()
		return
	}
	d.setPrevious(l.decision)
	l.decision = d
	l.nextState = stateDownLeftBranch
}

// recordSolution notifies the monitors, updates the incumbent and selects
// the continuation. The solution is always recorded before any limit
// interrupt fires.
func (l *SearchLoop) recordSolution() {
	l.monitors.onSolution()
	l.objective.UpdateBest()
	if !l.alive {
		// A monitor stopped the search while observing the solution; keep
		// its interrupt as the final word.
		return
	}
	if l.stopAtFirstSolution {
		l.Interrupt(MsgFirstSol)
		return
	}
	if l.stateAfterSolution == stateRestart && l.trail.WorldIndex() == l.searchWorld {
		// Already at the search world, no trail movement necessary.
		l.nextState = stateOpenNode
		return
	}
	l.nextState = l.stateAfterSolution
}

// downLeftBranch backs up the current state, applies the decision and
// propagates the new information on the constraint network.
func (l *SearchLoop) downLeftBranch() {
	l.downBranch(l.decision.ApplyLeft)
}

// downRightBranch applies the refutation of the current decision after its
// left branch failed.
func (l *SearchLoop) downRightBranch() {
	l.downBranch(l.decision.ApplyRight)
}

func (l *SearchLoop) downBranch(apply func() error) {
	l.trail.WorldPush()
	if err := apply(); err != nil {
		l.fail()
		return
	}
	if err := l.model.Engine().Propagate(); err != nil {
		l.fail()
		return
	}
	l.nextState = stateOpenNode
}

func (l *SearchLoop) fail() {
	l.measures.incFailCount()
	l.nextState = l.stateAfterFail
}

// upBranch rolls back the previous state and reconsiders the current
// decision: apply its next branch if one remains, otherwise free it and
// keep climbing. Reaching the root decision means the tree is exhausted.
func (l *SearchLoop) upBranch() {
	jump := l.jumpTo
	l.jumpTo = 1
	for ; jump > 0; jump-- {
		if !l.popWorld() {
			return
		}
	}
	if l.decision == l.root {
		l.Interrupt(MsgRoot)
		return
	}
	if l.decision.HasNextBranch() {
		l.nextState = stateDownRightBranch
		return
	}
	tmp := l.decision
	l.decision = tmp.Previous()
	tmp.Free()
	l.nextState = stateUpBranch
}

// restartSearch rewinds to the search world and re-propagates so that the
// objective cut and any permanently posted tightenings apply. A
// contradiction here proves no improving solution remains.
func (l *SearchLoop) restartSearch() {
	if !l.restoreRootNode() {
		return
	}
	if err := l.model.Engine().Propagate(); err != nil {
		l.measures.incFailCount()
		l.Interrupt(MsgCut)
		return
	}
	l.nextState = stateOpenNode
}

// restoreRootNode restores the state right after the initial propagation
// and frees the whole decision chain.
func (l *SearchLoop) restoreRootNode() bool {
	if err := l.trail.WorldPopUntil(l.searchWorld); err != nil {
		l.structuralFailure(err)
		return false
	}
	l.timeStamp++ // force delta consumers to resample on solution recording
	for l.decision != l.root {
		tmp := l.decision
		l.decision = tmp.Previous()
		tmp.Free()
	}
	return true
}

// close sets the feasibility and optimality outcome on the measures.
func (l *SearchLoop) close() {
	sat := ESatFalse
	if l.measures.SolutionCount > 0 {
		sat = ESatTrue
		if l.objective.IsOptimization() {
			exhausted := l.stopReason == MsgRoot || l.stopReason == MsgCut
			l.measures.SetObjectiveOptimal(exhausted && !l.hasReachedLimit && !l.stopAtFirstSolution)
		}
	} else if l.hasReachedLimit {
		l.measures.SetObjectiveOptimal(false)
		sat = ESatUndefined
	}
	l.measures.SetFeasible(sat)
}

// popWorld pops one world, turning a trail failure into a structural error.
func (l *SearchLoop) popWorld() bool {
	if err := l.trail.WorldPop(); err != nil {
		l.structuralFailure(err)
		return false
	}
	return true
}

// structuralFailure records a collaborator bug and stops the search. The
// error surfaces from Launch.
func (l *SearchLoop) structuralFailure(err error) {
	l.err = err
	l.log.WithError(err).Error("structural failure in the search loop")
	l.Interrupt(err.Error())
}
