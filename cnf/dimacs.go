package cnf

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Builder receives the pieces of a DIMACS file as it is scanned, in the
// order they appear. It mirrors the builder pattern used by the wider SAT
// tooling ecosystem (e.g. rhartert/dimacs) so callers can stream a file
// directly into solver-specific storage without building an intermediate
// Formula first.
type Builder interface {
	Problem(numVars, numClauses int)
	Clause(lits []Literal)
	Comment(line string)
}

// formulaBuilder accumulates a Builder stream into a Formula.
type formulaBuilder struct {
	f Formula
}

func (b *formulaBuilder) Problem(numVars, numClauses int) {
	b.f.NumVars = numVars
	b.f.NumClauses = numClauses
	if numClauses > 0 {
		b.f.Clauses = make([]Clause, 0, numClauses)
	}
}

func (b *formulaBuilder) Clause(lits []Literal) {
	c := make(Clause, len(lits))
	copy(c, lits)
	b.f.Clauses = append(b.f.Clauses, c)
}

func (b *formulaBuilder) Comment(string) {}

// ParseDIMACS reads a DIMACS CNF formula from r.
//
// A handful of real-world variations are tolerated, matching the spec's
// leniency requirements:
//
//   - Comment lines ('c') may appear anywhere, not just in the preamble.
//   - The problem line ('p cnf <vars> <clauses>') may be missing entirely;
//     NumClauses is then derived from the clauses actually read, while
//     NumVars stays 0 and the upper bound of the literal range check is
//     not applied.
//   - A clause's literals may be split across several lines; the clause
//     only ends at a literal '0' terminator, not at a newline.
//   - If the problem line's clause count is zero or absent, it is set to
//     the number of clauses actually parsed.
func ParseDIMACS(r io.Reader) (*Formula, error) {
	b := &formulaBuilder{}
	if err := ReadDIMACS(r, b); err != nil {
		return nil, err
	}
	f := b.f
	if f.NumClauses == 0 {
		f.NumClauses = len(f.Clauses)
	}
	for _, c := range f.Clauses {
		for _, l := range c {
			if v := l.Var(); v < 1 || (f.NumVars > 0 && v > f.NumVars) {
				return nil, errors.Errorf("literal %d out of range [1, %d]", int(l), f.NumVars)
			}
		}
	}
	return &f, nil
}

// ReadDIMACS scans DIMACS text from r, invoking the corresponding Builder
// method for each comment, problem line, and clause encountered, in file
// order.
func ReadDIMACS(r io.Reader, b Builder) error {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var clause []Literal
	sawProblem := false

	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case 'c':
			b.Comment(line)
			continue
		case '%':
			// Some CNF corpora attach a trailer after a lone '%' line.
			goto done
		case 'p':
			if sawProblem {
				return errors.New("multiple problem lines")
			}
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
				return errors.Errorf("malformed problem line %q", line)
			}
			numVars, err := strconv.Atoi(fields[2])
			if err != nil {
				return errors.Wrap(err, "malformed variable count")
			}
			numClauses, err := strconv.Atoi(fields[3])
			if err != nil {
				return errors.Wrap(err, "malformed clause count")
			}
			b.Problem(numVars, numClauses)
			sawProblem = true
			continue
		}

		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return errors.Wrapf(err, "invalid literal %q", field)
			}
			if n == 0 {
				b.Clause(intsToLiterals(clause))
				clause = clause[:0]
				continue
			}
			clause = append(clause, Literal(n))
		}
	}
done:
	if err := s.Err(); err != nil {
		return errors.Wrap(err, "scanning DIMACS input")
	}
	if len(clause) > 0 {
		// Tolerate a missing trailing terminator on the last clause.
		b.Clause(intsToLiterals(clause))
	}
	return nil
}

func intsToLiterals(lits []Literal) []Literal {
	out := make([]Literal, len(lits))
	copy(out, lits)
	return out
}

// WriteDIMACS emits f in standard DIMACS CNF format: a "p cnf" header
// followed by one clause per line, each terminated by " 0".
func WriteDIMACS(w io.Writer, f *Formula) error {
	bw := bufio.NewWriter(w)
	numClauses := f.NumClauses
	if numClauses != len(f.Clauses) {
		numClauses = len(f.Clauses)
	}
	if _, err := bw.WriteString("p cnf " + strconv.Itoa(f.NumVars) + " " + strconv.Itoa(numClauses) + "\n"); err != nil {
		return errors.Wrap(err, "writing DIMACS header")
	}
	for _, c := range f.Clauses {
		for _, l := range c {
			if _, err := bw.WriteString(strconv.Itoa(int(l))); err != nil {
				return errors.Wrap(err, "writing DIMACS clause")
			}
			if err := bw.WriteByte(' '); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("0\n"); err != nil {
			return errors.Wrap(err, "writing DIMACS clause terminator")
		}
	}
	return bw.Flush()
}
