package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
	"route-optimizer-service/internal/optimizer"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

const maxBodyBytes = 1 << 20

var errMissingBody = errors.New("request body is required")

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: req_id=%s method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg})
}

// decodeBody reads exactly one JSON object. With optional set, an empty
// body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any, optional bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			if optional {
				return nil
			}
			return errMissingBody
		}
		return fmt.Errorf("invalid json body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}

	return nil
}

// errorResponse classifies err into a status and a client-safe body.
// Unclassified errors become 500 with a generic message.
func errorResponse(err error) (int, dto.ErrorResponse) {
	res := dto.ErrorResponse{Error: err.Error()}

	var se *optimizer.StopError
	if errors.As(err, &se) {
		res.Error = se.Error()
		res.StopID = se.StopID
		idx := se.Index
		res.Index = &idx
	}

	switch {
	case errors.Is(err, optimizer.ErrEmptyInput):
		res.Code = "empty_input"
	case errors.Is(err, optimizer.ErrDuplicateID):
		res.Code = "duplicate_id"
	case errors.Is(err, geo.ErrInvalidCoordinate):
		res.Code = "invalid_coordinate"
	case errors.Is(err, optimizer.ErrInvalidOptions):
		res.Code = "invalid_options"
	case errors.Is(err, services.ErrBatchTooLarge):
		res.Code = "batch_too_large"
	case errors.Is(err, ports.ErrStopListNotFound):
		return http.StatusNotFound, dto.ErrorResponse{Error: "stop list not found", Code: "not_found"}
	default:
		return http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error", Code: "internal"}
	}

	return http.StatusBadRequest, res
}

func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, res := errorResponse(err)
	if status == http.StatusInternalServerError {
		log.Printf("req_id=%s %s failed: %v", obs.RequestID(r.Context()), op, err)
	}
	writeJSON(w, r, status, res)
}

func toStops(in []dto.StopRequest) ([]domain.Stop, error) {
	if in == nil {
		return nil, nil
	}

	stops := make([]domain.Stop, 0, len(in))
	for i, s := range in {
		if s.Lat == nil || s.Lng == nil {
			return nil, fmt.Errorf("stop %q at index %d: lat and lng are required", s.ID, i)
		}
		stops = append(stops, domain.Stop{ID: s.ID, Name: s.Name, Lat: *s.Lat, Lng: *s.Lng})
	}
	return stops, nil
}

func toOverrides(o dto.OptionsRequest) services.OptionOverrides {
	return services.OptionOverrides{
		ClosedTour:      o.ClosedTour,
		ExactThreshold:  o.ExactThreshold,
		MaxTwoOptPasses: o.MaxTwoOptPasses,
	}
}

func toRouteResponse(route domain.Route, stops []domain.Stop) dto.RouteResponse {
	byID := make(map[string]domain.Stop, len(stops))
	for _, s := range stops {
		byID[s.ID] = s
	}

	res := dto.RouteResponse{
		Order:           route.Order,
		TotalDistanceKm: route.TotalDistanceKm,
		ClosedTour:      route.ClosedTour,
		Method:          string(route.Method),
		Passes:          route.Passes,
		Legs:            make([]dto.LegResponse, 0, len(route.Legs)),
		Path:            make([][]float64, 0, len(route.Order)+1),
	}
	if res.Order == nil {
		res.Order = []string{}
	}

	for _, l := range route.Legs {
		res.Legs = append(res.Legs, dto.LegResponse{
			From:         l.From,
			To:           l.To,
			DistanceKm:   l.DistanceKm,
			CumulativeKm: l.CumulativeKm,
		})
	}

	for _, id := range route.Order {
		res.Path = append(res.Path, byID[id].Coords().CoordsToList())
	}
	if route.ClosedTour && len(route.Order) >= 2 {
		res.Path = append(res.Path, byID[route.Order[0]].Coords().CoordsToList())
	}

	return res
}
