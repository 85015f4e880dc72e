package dpll

import "github.com/gosat/satkit/cnf"

// JeroslowWang is the weighted branching rule of spec.md §4.4: each
// undecided literal in an active clause of length k accumulates weight
// 2^(-k); the literal (with sign) of maximum total weight is chosen.
func JeroslowWang(clauses []cnf.Clause) cnf.Literal {
	weights := map[cnf.Literal]float64{}
	var order []cnf.Literal // first-seen order, so tie-breaks are deterministic
	for _, c := range clauses {
		w := 1.0
		for i := 0; i < len(c); i++ {
			w /= 2
		}
		for _, l := range c {
			if _, seen := weights[l]; !seen {
				order = append(order, l)
			}
			weights[l] += w
		}
	}

	var best cnf.Literal
	bestWeight := -1.0
	for _, l := range order {
		if w := weights[l]; w > bestWeight {
			bestWeight = w
			best = l
		}
	}
	if bestWeight < 0 {
		// No weights defined: should not occur before termination (the
		// caller never calls Branch on an empty clause set), but spec.md
		// §4.4 mandates a fallback rather than a panic.
		return clauses[0][0]
	}
	return best
}
