package domain

// Represents a single place a route must visit.
// A Stop is created by the caller and never mutated by the optimizer.
// IDs must be unique within one optimization request.
type Stop struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Return the stop location.
func (s Stop) Coords() Coordinates { return Coordinates{Lat: s.Lat, Lng: s.Lng} }

// A named, ordered collection of stops kept by the dashboard.
// The first stop is the route origin.
type StopList struct {
	ID    string
	Name  string
	Stops []Stop
}
