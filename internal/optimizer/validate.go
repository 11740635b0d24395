package optimizer

import (
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
)

// validateStops runs before any distance is computed.
// Stops are checked in input order and the first offending stop wins.
//
// Complexity: O(n) time, O(n) space for the id set.
func validateStops(stops []domain.Stop) error {
	if stops == nil {
		return ErrEmptyInput
	}

	seen := make(map[string]struct{}, len(stops))
	for i, s := range stops {
		if err := geo.ValidateCoordinate(s.Lat, s.Lng); err != nil {
			return &StopError{Index: i, StopID: s.ID, Err: err}
		}
		if _, ok := seen[s.ID]; ok {
			return &StopError{Index: i, StopID: s.ID, Err: ErrDuplicateID}
		}
		seen[s.ID] = struct{}{}
	}

	return nil
}
