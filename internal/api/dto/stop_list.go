package dto

type StopListSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StopCount int    `json:"stop_count"`
	OriginID  string `json:"origin_id,omitempty"`
}

type ListStopListsResponse struct {
	StopLists []StopListSummary `json:"stop_lists"`
}
