package cdcl

// clause is a clause in the engine's growable clause table. Clause ids are
// stable: the table is append-only and never compacted (spec.md §9,
// "Clause storage as growable table"), so reason[v] can safely hold a
// pointer into it across backjumps and restarts.
type clause struct {
	id       int
	literals []lit // the first two entries are always the watched pair
	learnt   bool
	activity float64
}

// newClause builds a clause and registers its two watched literals, per
// spec.md §3's watch_map/watches invariant: a unit clause watches its only
// literal twice.
func (s *Solver) newClause(lits []lit, learnt bool) *clause {
	c := &clause{
		id:       len(s.clauses),
		literals: append([]lit(nil), lits...),
		learnt:   learnt,
	}
	s.clauses = append(s.clauses, c)

	w0, w1 := c.literals[0], c.literals[0]
	if len(c.literals) > 1 {
		w1 = c.literals[1]
	}
	s.watch(c, w0)
	s.watch(c, w1)
	return c
}

// watch registers clause c under watches[w.opposite()], so that it is
// revisited whenever w is falsified (i.e. w.opposite() is assigned true).
func (s *Solver) watch(c *clause, w lit) {
	key := w.opposite()
	s.watches[key] = append(s.watches[key], c)
}
