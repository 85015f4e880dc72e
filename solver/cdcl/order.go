package cdcl

import "github.com/rhartert/yagh"

// varOrder maintains the VSIDS decision order: a min-heap over variable ids
// keyed by negative activity score (so popping returns the highest-activity
// unassigned variable), grounded in the teacher's internal/sat/ordering.go.
type varOrder struct {
	heap *yagh.IntMap[float64]

	activity []float64
	inc      float64
	decay    float64

	phase []bool
}

func newVarOrder(numVars int, decay float64) *varOrder {
	return &varOrder{
		heap:     yagh.New[float64](0),
		activity: make([]float64, 0, numVars),
		inc:      1,
		decay:    decay,
		phase:    make([]bool, 0, numVars),
	}
}

// addVar registers a new variable with initial activity score and phase.
func (o *varOrder) addVar(initScore float64, initPhase bool) {
	varID := len(o.activity)
	o.activity = append(o.activity, initScore)
	o.phase = append(o.phase, initPhase)
	o.heap.GrowBy(1)
	o.heap.Put(varID, -initScore)
}

// bump increases v's activity score, rescaling every score if it would
// otherwise overflow, per spec.md §4.6's VSIDS decay policy (bump the
// increment rather than multiply every score down on every conflict).
func (o *varOrder) bump(v int) {
	o.activity[v] += o.inc
	if o.heap.Contains(v) {
		o.heap.Put(v, -o.activity[v])
	}
	if o.activity[v] > 1e100 {
		o.rescale()
	}
}

// decayAll is called once per conflict; it is algebraically equivalent to
// multiplying every score by spec.md's decay=0.95.
func (o *varOrder) decayAll() {
	o.inc /= o.decay
	if o.inc > 1e100 {
		o.rescale()
	}
}

func (o *varOrder) rescale() {
	o.inc *= 1e-100
	for v, a := range o.activity {
		o.activity[v] = a * 1e-100
		if o.heap.Contains(v) {
			o.heap.Put(v, -o.activity[v])
		}
	}
}

// reinsert adds an unassigned variable back to the set of decision
// candidates (called when a backjump or restart unassigns it), saving its
// last phase for phase-saving (spec.md §3's phase[v]).
func (o *varOrder) reinsert(v int, savedPhase bool) {
	o.phase[v] = savedPhase
	o.heap.Put(v, -o.activity[v])
}

// next pops the highest-activity variable that is still unassigned. Because
// variables assigned by propagation (rather than decision) are never
// explicitly removed from the heap, popped entries may point at a variable
// that already has a value; such stale entries are lazily discarded here,
// per spec.md §9's priority-queue note.
func (o *varOrder) next(isAssigned func(int) bool) (int, bool, bool) {
	for {
		item, ok := o.heap.Pop()
		if !ok {
			return 0, false, false
		}
		if isAssigned(item.Elem) {
			continue
		}
		return item.Elem, o.phase[item.Elem], true
	}
}
