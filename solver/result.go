// Package solver defines the result contract shared by every engine in the
// suite (cdcl, dpll, walksat, probsat): a uniform way to report whether a
// CNF instance is satisfiable, the model if one was found, and the search
// counters spec.md §6.2 requires.
package solver

import "github.com/gosat/satkit/cnf"

// Status is the outcome of a solve. The harness (out of scope) may rewrite
// a Status to TIMEOUT or ERROR after the fact; engines themselves only ever
// return SAT, UNSAT, or Unknown.
type Status string

const (
	SAT     Status = "SAT"
	UNSAT   Status = "UNSAT"
	Unknown Status = "UNKNOWN"
	Timeout Status = "TIMEOUT"
	Error   Status = "ERROR"
)

// Result is the record every solver entry point returns.
type Result struct {
	Solver     string         `json:"solver"`
	Status     Status         `json:"status"`
	Assignment cnf.Assignment `json:"assignment,omitempty"`
	NumVars    int            `json:"num_vars"`
	NumClauses int            `json:"num_clauses"`

	Decisions        int64 `json:"decisions,omitempty"`
	UnitPropagations int64 `json:"unit_propagations,omitempty"`
	PureEliminations int64 `json:"pure_eliminations,omitempty"`
	Conflicts        int64 `json:"conflicts,omitempty"`
	LearnedClauses   int64 `json:"learned_clauses,omitempty"`
	Flips            int64 `json:"flips,omitempty"`
	Restarts         int64 `json:"restarts,omitempty"`
}
