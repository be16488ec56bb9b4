package kinetics

import "iter"

// Record is one committed point of a run: time, state, and the auxiliary
// snapshot from the evaluation that produced the state.
type Record struct {
	Time  float64
	State State
	Aux   Snapshot
}

// Trace is the append-only history of a run. Records are never mutated
// once appended.
type Trace struct {
	records []Record
}

func NewTrace(capacity int) *Trace {
	return &Trace{records: make([]Record, 0, capacity)}
}

func (t *Trace) Append(rec Record) {
	t.records = append(t.records, rec)
}

func (t *Trace) Len() int {
	return len(t.records)
}

func (t *Trace) At(i int) Record {
	return t.records[i]
}

func (t *Trace) Last() Record {
	return t.records[len(t.records)-1]
}

// Records exposes the backing slice for bulk reads. Callers must not
// modify it.
func (t *Trace) Records() []Record {
	return t.records
}

// All iterates records in append order.
func (t *Trace) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, rec := range t.records {
			if !yield(i, rec) {
				return
			}
		}
	}
}
