package domain

// Identifies which solver phase produced a route.
type RouteMethod string

const (
	MethodTrivial   RouteMethod = "trivial"
	MethodExact     RouteMethod = "exact"
	MethodHeuristic RouteMethod = "heuristic"
)

// Represents one travelled leg between two consecutive stops.
type RouteLeg struct {
	From         string  `json:"from"`
	To           string  `json:"to"`
	DistanceKm   float64 `json:"distance_km"`
	CumulativeKm float64 `json:"cumulative_km"`
}

// Represents the optimized visiting order for a set of stops.
// Order is a permutation of the input stop ids starting at the origin.
// For closed tours the last leg returns to the origin and is included
// in both Legs and TotalDistanceKm.
// It is immutable planning data and contains no side effects.
type Route struct {
	Order           []string    `json:"order"`
	TotalDistanceKm float64     `json:"total_distance_km"`
	ClosedTour      bool        `json:"closed_tour"`
	Method          RouteMethod `json:"method"`
	Passes          int         `json:"passes"`
	Legs            []RouteLeg  `json:"legs"`
}
