package reconcile

import "fmt"

// Result summarises one reconciliation run.
type Result struct {
	TotalRead  int      `json:"total_read"`
	Inserted   int      `json:"inserted"`
	Duplicates int      `json:"duplicates"`
	Skipped    int      `json:"skipped"`
	Errors     []string `json:"errors"`
}

func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r Result) String() string {
	return fmt.Sprintf("read %d | inserted %d | duplicates %d | skipped %d | errors %d",
		r.TotalRead, r.Inserted, r.Duplicates, r.Skipped, len(r.Errors))
}
