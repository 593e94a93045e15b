package batch

import "mobiliario/internal/domain"

// Report is the outcome of one job run. It is built up locally and returned
// by value; jobs never share counters across calls.
type Report struct {
	Processed int
	Updated   int
	Failed    int
}

func (r Report) Add(other Report) Report {
	return Report{
		Processed: r.Processed + other.Processed,
		Updated:   r.Updated + other.Updated,
		Failed:    r.Failed + other.Failed,
	}
}

// Scope narrows a job run to a single budget. The zero value covers every
// budget.
type Scope struct {
	BudgetID *uint
}

func (s Scope) Filter() domain.BudgetFilter {
	return domain.BudgetFilter{ID: s.BudgetID}
}
