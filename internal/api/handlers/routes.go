package handlers

import (
	"log"
	"net/http"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/services"
)

// RouteHandler exposes ad-hoc route optimization endpoints.
type RouteHandler struct {
	Service *services.RouteService
}

// Optimize solves one stop list posted in the body. The first stop is the origin.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	stops, err := toStops(req.Stops)
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: "invalid_coordinate"})
		return
	}

	route, err := h.Service.Optimize(r.Context(), stops, toOverrides(req.OptionsRequest))
	if err != nil {
		writeServiceError(w, r, "optimize route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(route, stops))
}

// OptimizeBatch solves several independent requests. A failing item does
// not fail the batch.
func (h *RouteHandler) OptimizeBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.BatchOptimizeRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Requests) > services.MaxBatchSize {
		writeServiceError(w, r, "optimize batch", services.ErrBatchTooLarge)
		return
	}

	res := dto.BatchOptimizeResponse{Results: make([]dto.BatchItemResponse, len(req.Requests))}
	items := make([]services.BatchItem, 0, len(req.Requests))
	itemIndex := make([]int, 0, len(req.Requests))

	// Malformed items are answered directly; the rest go to the service.
	for i, one := range req.Requests {
		res.Results[i].Index = i
		stops, err := toStops(one.Stops)
		if err != nil {
			res.Results[i].Error = &dto.ErrorResponse{Error: err.Error(), Code: "invalid_coordinate"}
			continue
		}
		items = append(items, services.BatchItem{Stops: stops, Overrides: toOverrides(one.OptionsRequest)})
		itemIndex = append(itemIndex, i)
	}

	results, err := h.Service.OptimizeBatch(r.Context(), items)
	if err != nil {
		if r.Context().Err() != nil {
			log.Printf("req_id=%s optimize batch abandoned: %v", obs.RequestID(r.Context()), err)
			return
		}
		writeServiceError(w, r, "optimize batch", err)
		return
	}

	for j, out := range results {
		i := itemIndex[j]
		if out.Err != nil {
			status, body := errorResponse(out.Err)
			if status == http.StatusInternalServerError {
				log.Printf("req_id=%s optimize batch item=%d failed: %v", obs.RequestID(r.Context()), i, out.Err)
			}
			res.Results[i].Error = &body
			continue
		}
		route := toRouteResponse(out.Route, items[j].Stops)
		res.Results[i].Route = &route
	}

	writeJSON(w, r, http.StatusOK, res)
}
