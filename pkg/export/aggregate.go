package export

// Aggregate accumulates per-file extraction results into one participant map
// and one mention set, plus counters of files folded in versus failed.
type Aggregate struct {
	Participants map[string]ParticipantRecord
	Mentions     map[string]bool

	// Processed counts files successfully folded in; Failed counts files
	// that could not be decoded or parsed and were excluded.
	Processed int
	Failed    int
}

// NewAggregate returns an empty aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{
		Participants: make(map[string]ParticipantRecord),
		Mentions:     make(map[string]bool),
	}
}

// Add folds one extraction result in. Entries added later overwrite earlier
// ones sharing the same key; mention sets union.
func (a *Aggregate) Add(res Result) {
	for key, record := range res.Participants {
		a.Participants[key] = record
	}
	for token := range res.Mentions {
		a.Mentions[token] = true
	}
	a.Processed++
}

// AddFailure counts a file that failed to decode or parse. The failing file
// contributes nothing to the merge and never aborts the remaining files.
func (a *Aggregate) AddFailure() {
	a.Failed++
}

// Merge folds a sequence of extraction results into a fresh aggregate in the
// given order (file upload order).
func Merge(results ...Result) *Aggregate {
	a := NewAggregate()
	for _, res := range results {
		a.Add(res)
	}
	return a
}
