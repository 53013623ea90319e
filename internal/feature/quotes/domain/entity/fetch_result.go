package entity

// Outcome classifies what happened when a single symbol was fetched.
type Outcome string

const (
	OutcomeFetched Outcome = "fetched" // a quote was parsed from the response
	OutcomeNoData  Outcome = "no_data" // the response carried no price
	OutcomeFailed  Outcome = "failed"  // transport, status or decoding failure
)

// FetchResult is the per-symbol result of a fetch.
// Quote is set only when Outcome is OutcomeFetched.
type FetchResult struct {
	Symbol  string
	Outcome Outcome
	Quote   *Quote
	Reason  string // upstream explanation for OutcomeNoData, if any
	Err     error  // cause of OutcomeFailed
}

// Stored reports whether the result yields a row for stock_data.
// A fetched quote whose price could not be parsed is not stored.
func (r FetchResult) Stored() bool {
	return r.Outcome == OutcomeFetched && r.Quote != nil && r.Quote.HasPrice()
}

// RunReport summarizes one fetch-and-persist run.
type RunReport struct {
	RunID    string
	Results  []FetchResult
	Rows     []Quote // quotes with a price, in symbol order
	Inserted int
}

// Count returns how many results ended with the given outcome.
func (r *RunReport) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Skipped returns the symbols that contributed no quote to the run.
func (r *RunReport) Skipped() []string {
	var out []string
	for _, res := range r.Results {
		if !res.Stored() {
			out = append(out, res.Symbol)
		}
	}
	return out
}
