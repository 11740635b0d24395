package dto

type StopRequest struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
}

// OptionsRequest overrides server defaults for one request. Omitted
// fields keep the default.
type OptionsRequest struct {
	ClosedTour      *bool `json:"closed_tour"`
	ExactThreshold  *int  `json:"exact_threshold"`
	MaxTwoOptPasses *int  `json:"max_two_opt_passes"`
}

type OptimizeRequest struct {
	Stops []StopRequest `json:"stops"`
	OptionsRequest
}

type BatchOptimizeRequest struct {
	Requests []OptimizeRequest `json:"requests"`
}

type LegResponse struct {
	From         string  `json:"from"`
	To           string  `json:"to"`
	DistanceKm   float64 `json:"distance_km"`
	CumulativeKm float64 `json:"cumulative_km"`
}

type RouteResponse struct {
	Order           []string      `json:"order"`
	TotalDistanceKm float64       `json:"total_distance_km"`
	ClosedTour      bool          `json:"closed_tour"`
	Method          string        `json:"method"`
	Passes          int           `json:"passes"`
	Legs            []LegResponse `json:"legs"`
	// Path lists [lng, lat] pairs in visiting order for map rendering.
	Path [][]float64 `json:"path"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	StopID string `json:"stop_id,omitempty"`
	Index  *int   `json:"index,omitempty"`
}

type BatchItemResponse struct {
	Index int            `json:"index"`
	Route *RouteResponse `json:"route,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}

type BatchOptimizeResponse struct {
	Results []BatchItemResponse `json:"results"`
}
