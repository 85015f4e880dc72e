// Package cdcl implements the conflict-driven clause-learning engine of
// spec.md §4.6: two-watched-literal propagation, an implicit implication
// graph reconstructed on demand, 1-UIP conflict analysis, non-chronological
// backjumping, VSIDS, phase saving, and geometric restarts.
//
// The engine's structure (clause table, watch lists, trail, VSIDS via a
// decrease-key heap) is grounded in the teacher package's
// internal/sat/solver.go, adapted to this suite's shared cnf.Formula input
// and solver.Result output.
package cdcl

import (
	"github.com/sirupsen/logrus"

	"github.com/gosat/satkit/cnf"
	"github.com/gosat/satkit/solver"
)

// Options configures a CDCL run. CDCL needs no PRNG seed: spec.md §5 notes
// it is deterministic without randomness as long as tie-breaks are, which
// a decrease-key heap guarantees.
type Options struct {
	// Log receives search-progress tracing at Debug level; nil discards it.
	Log *logrus.Entry
	// VarDecay is the VSIDS decay factor (spec.md §4.6 default: 0.95).
	VarDecay float64
	// RestartInitLimit and RestartMultiplier configure the geometric
	// restart schedule (spec.md §4.6 defaults: 100, 1.5).
	RestartInitLimit  float64
	RestartMultiplier float64
}

// DefaultOptions matches spec.md §4.6's restart/decay constants.
var DefaultOptions = Options{
	VarDecay:          0.95,
	RestartInitLimit:  100,
	RestartMultiplier: 1.5,
}

// Solver holds all CDCL search state (spec.md §3's "CDCL-specific state").
// No part of it is process-global: everything lives here and is discarded
// when Solve returns.
type Solver struct {
	numVars int
	clauses []*clause    // append-only clause table; ids are stable (§9)
	watches [][]*clause  // indexed by lit

	assigns []lbool // per variable
	level   []int   // decision_level[v], -1 if unassigned
	reason  []*clause

	trail    []lit
	trailLim []int // trail index where each decision level begins

	propQ *queue[lit]
	order *varOrder
	seen  *resetSet

	unsat bool

	decisions      int64
	conflicts      int64
	learnedClauses int64
	restarts       int64

	opts Options
	log  *logrus.Entry
}

// Solve runs the CDCL engine to completion on f and returns a Result
// compatible with every other engine in the suite.
func Solve(f *cnf.Formula, opts Options) *solver.Result {
	if opts.VarDecay == 0 {
		opts.VarDecay = DefaultOptions.VarDecay
	}
	if opts.RestartInitLimit == 0 {
		opts.RestartInitLimit = DefaultOptions.RestartInitLimit
	}
	if opts.RestartMultiplier == 0 {
		opts.RestartMultiplier = DefaultOptions.RestartMultiplier
	}
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(discardLogger)
	}

	s := newSolver(f, opts, log)
	res := &solver.Result{
		Solver:     "cdcl",
		NumVars:    f.NumVars,
		NumClauses: len(f.Clauses),
	}

	if s.unsat {
		res.Status = solver.UNSAT
		res.Conflicts = s.conflicts
		return res
	}

	if s.search() {
		res.Status = solver.SAT
		res.Assignment = s.model()
	} else {
		res.Status = solver.UNSAT
	}
	res.Decisions = s.decisions
	res.Conflicts = s.conflicts
	res.LearnedClauses = s.learnedClauses
	res.Restarts = s.restarts
	return res
}

// newSolver builds the initial state (spec.md §4.6 "Initialization"): VSIDS
// seeded from literal occurrence counts, all-true phases, watches on each
// clause's first two literals, every unit clause's literal assigned at
// level 0, and one round of level-0 propagation.
func newSolver(f *cnf.Formula, opts Options, log *logrus.Entry) *Solver {
	s := &Solver{
		numVars: f.NumVars,
		watches: make([][]*clause, 2*f.NumVars),
		assigns: make([]lbool, f.NumVars),
		level:   make([]int, f.NumVars),
		reason:  make([]*clause, f.NumVars),
		propQ:   newQueue[lit](128),
		seen:    &resetSet{},
		opts:    opts,
		log:     log,
	}
	for v := range s.level {
		s.level[v] = -1
	}

	occurrences := make([]float64, f.NumVars)
	for _, c := range f.Clauses {
		for _, l := range c {
			occurrences[l.Var()-1]++
		}
	}
	s.order = newVarOrder(f.NumVars, opts.VarDecay)
	for v := 0; v < f.NumVars; v++ {
		s.seen.expand()
		s.order.addVar(occurrences[v], true)
	}

	for _, c := range f.Clauses {
		if s.unsat {
			return s
		}
		lits := make([]lit, len(c))
		for i, l := range c {
			lits[i] = fromCNF(l)
		}
		s.addOriginalClause(lits)
	}
	if s.unsat {
		return s
	}

	if conflict := s.propagate(); conflict != nil {
		s.unsat = true
	}
	return s
}

// addOriginalClause dedupes lits, drops a trivially-true (tautological)
// clause entirely, filters against any already-known assignment, and
// either enqueues a resulting unit fact or registers a full clause with
// its watched pair.
func (s *Solver) addOriginalClause(lits []lit) {
	seen := make(map[lit]bool, len(lits))
	out := lits[:0]
	for _, l := range lits {
		if seen[l.opposite()] {
			return // tautology: clause is trivially satisfied, drop it
		}
		if seen[l] {
			continue // duplicate literal
		}
		seen[l] = true
		switch s.value(l) {
		case lTrue:
			return // already satisfied
		case lFalse:
			continue // falsified literal can be dropped
		}
		out = append(out, l)
	}

	switch len(out) {
	case 0:
		s.unsat = true
	case 1:
		if !s.enqueue(out[0], nil) {
			s.unsat = true
		}
	default:
		s.newClause(out, false)
	}
}

func (s *Solver) decisionLevel() int { return len(s.trailLim) }

func (s *Solver) value(l lit) lbool {
	v := s.assigns[l.variable()]
	if v == lUnknown {
		return lUnknown
	}
	if l.positive() {
		return v
	}
	return -v
}

func (s *Solver) isAssigned(v int) bool { return s.assigns[v] != lUnknown }

// enqueue assigns l true, recording its decision level and reason clause
// (nil sentinel for decisions and level-0 facts), and pushes it onto the
// trail and the propagation queue. It reports false on a conflicting
// assignment.
func (s *Solver) enqueue(l lit, from *clause) bool {
	switch s.value(l) {
	case lFalse:
		return false
	case lTrue:
		return true
	}
	v := l.variable()
	s.assigns[v] = lift(l.positive())
	s.level[v] = s.decisionLevel()
	s.reason[v] = from
	s.trail = append(s.trail, l)
	s.propQ.push(l)
	return true
}

func (s *Solver) assume(l lit) bool {
	s.trailLim = append(s.trailLim, len(s.trail))
	return s.enqueue(l, nil)
}

// propagate drains the propagation queue, visiting every clause watching
// the negation of each newly-true literal (spec.md §4.6 "Propagation").
func (s *Solver) propagate() *clause {
	for !s.propQ.isEmpty() {
		l := s.propQ.pop()
		watchers := s.watches[l]
		s.watches[l] = nil

		for i := 0; i < len(watchers); i++ {
			c := watchers[i]
			if !c.propagate(s, l) {
				s.watches[l] = append(s.watches[l], watchers[i+1:]...)
				s.propQ.clear()
				return c
			}
		}
	}
	return nil
}

// propagate re-establishes clause c's watched pair after literal l (whose
// negation c was watching) was assigned true. It returns false if c is now
// a conflict.
func (c *clause) propagate(s *Solver, l lit) bool {
	falsified := l.opposite()
	if c.literals[0] == falsified {
		c.literals[0], c.literals[1] = c.literals[1], c.literals[0]
	}
	other := c.literals[0]
	if s.value(other) == lTrue {
		s.watch(c, c.literals[1])
		return true
	}
	for i := 2; i < len(c.literals); i++ {
		if s.value(c.literals[i]) != lFalse {
			c.literals[1], c.literals[i] = c.literals[i], c.literals[1]
			s.watch(c, c.literals[1])
			return true
		}
	}
	s.watch(c, c.literals[1])
	return s.enqueue(other, c)
}

// explainFailure returns the antecedent (true-polarity) literals that
// caused conflicting clause c to be falsified entirely.
func (c *clause) explainFailure() []lit {
	out := make([]lit, len(c.literals))
	for i, l := range c.literals {
		out[i] = l.opposite()
	}
	return out
}

// explainAssign returns the antecedent literals that forced c.literals[0]
// to be assigned (c.literals[0] is always the implied literal for any
// clause serving as a reason, by construction of propagate/record).
func (c *clause) explainAssign() []lit {
	out := make([]lit, len(c.literals)-1)
	for i, l := range c.literals[1:] {
		out[i] = l.opposite()
	}
	return out
}

// analyze performs 1-UIP conflict analysis (spec.md §4.6), returning the
// learned clause (asserting literal first) and the backjump level.
func (s *Solver) analyze(conflict *clause) ([]lit, int) {
	s.seen.clear()
	learnt := []lit{0}
	pending := 0
	backjump := 0

	reasonClause := conflict
	trailIdx := len(s.trail) - 1
	var pivot lit
	first := true

	for {
		var antecedents []lit
		if first {
			antecedents = reasonClause.explainFailure()
			first = false
		} else {
			antecedents = reasonClause.explainAssign()
		}

		for _, q := range antecedents {
			v := q.variable()
			if s.seen.contains(v) {
				continue
			}
			s.seen.add(v)
			if s.level[v] == s.decisionLevel() {
				pending++
				continue
			}
			learnt = append(learnt, q.opposite())
			if s.level[v] > backjump {
				backjump = s.level[v]
			}
		}

		for {
			pivot = s.trail[trailIdx]
			trailIdx--
			if s.seen.contains(pivot.variable()) {
				break
			}
		}
		reasonClause = s.reason[pivot.variable()]
		pending--
		if pending <= 0 {
			break
		}
	}

	learnt[0] = pivot.opposite()
	return learnt, backjump
}

// record installs a learned clause (spec.md §4.6 "Backjump and clause
// learning"): register it with watches on its first two literals (placing
// the highest-level remaining literal second, to keep the watch pair as
// informative as possible), bump VSIDS for every one of its variables, and
// assert its 1-UIP literal.
func (s *Solver) record(lits []lit) {
	var c *clause
	if len(lits) == 1 {
		s.enqueue(lits[0], nil)
	} else {
		maxLevel, wl := -1, 1
		for i := 1; i < len(lits); i++ {
			if lvl := s.level[lits[i].variable()]; lvl > maxLevel {
				maxLevel, wl = lvl, i
			}
		}
		lits[wl], lits[1] = lits[1], lits[wl]
		c = s.newClause(lits, true)
		s.enqueue(lits[0], c)
	}
	s.learnedClauses++
	for _, l := range lits {
		s.order.bump(l.variable())
	}
	s.order.decayAll()
}

// cancelUntil backtracks to decisionLevel, unassigning every variable
// decided or implied above it and reinserting them into the VSIDS order
// with their last-assigned phase saved (spec.md §3 phase[v]).
func (s *Solver) cancelUntil(level int) {
	for s.decisionLevel() > level {
		start := s.trailLim[len(s.trailLim)-1]
		for i := len(s.trail) - 1; i >= start; i-- {
			l := s.trail[i]
			v := l.variable()
			s.order.reinsert(v, l.positive())
			s.assigns[v] = lUnknown
			s.reason[v] = nil
			s.level[v] = -1
		}
		s.trail = s.trail[:start]
		s.trailLim = s.trailLim[:len(s.trailLim)-1]
	}
}

// search is the main CDCL loop (spec.md §4.6): alternating propagation,
// conflict analysis with learning, geometric restarts, and decisions.
func (s *Solver) search() bool {
	limit := s.opts.RestartInitLimit
	sinceRestart := int64(0)

	for {
		if conflict := s.propagate(); conflict != nil {
			s.conflicts++
			sinceRestart++
			if s.decisionLevel() == 0 {
				return false
			}
			learnt, backjump := s.analyze(conflict)
			s.cancelUntil(backjump)
			s.record(learnt)
			s.log.WithField("conflicts", s.conflicts).Debug("cdcl: learned clause")
			continue
		}

		if sinceRestart >= int64(limit) {
			s.cancelUntil(0)
			sinceRestart = 0
			limit *= s.opts.RestartMultiplier
			s.restarts++
			s.log.WithField("restarts", s.restarts).Debug("cdcl: geometric restart")
			continue
		}

		v, phase, ok := s.order.next(s.isAssigned)
		if !ok {
			return true
		}
		s.decisions++
		var l lit
		if phase {
			l = posLit(v)
		} else {
			l = negLit(v)
		}
		s.assume(l)
	}
}

// model converts the final assignment into the shared cnf.Assignment form.
func (s *Solver) model() cnf.Assignment {
	a := make(cnf.Assignment, s.numVars)
	for v := 0; v < s.numVars; v++ {
		a[v+1] = s.assigns[v] == lTrue
	}
	return a
}

var discardLogger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
