package question

import (
	"errors"
	"fmt"
)

// ValidateSet checks invariants that span a whole question set: IDs are
// unique, and every question was built through a constructor. Returns all
// problems joined, or nil if the set is valid.
func ValidateSet(questions []Question) error {
	var errs []error

	seen := make(map[int]bool, len(questions))
	for i, q := range questions {
		if q.payload == nil {
			errs = append(errs, &ValidationError{q.ID, "type", fmt.Sprintf("question at position %d has no payload", i+1)})
		}
		if seen[q.ID] {
			errs = append(errs, &ValidationError{q.ID, "id", "duplicate question ID"})
		}
		seen[q.ID] = true
	}

	return errors.Join(errs...)
}
