package handlers

import (
	"log"
	"net/http"
	"strings"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// StopListHandler exposes saved stop lists and optimizes them by id.
// Service must share Repo.
type StopListHandler struct {
	Repo    ports.StopListRepository
	Service *services.RouteService
}

func (h *StopListHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	lists, err := h.Repo.ListStopLists(r.Context())
	if err != nil {
		log.Printf("req_id=%s list stop lists failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListStopListsResponse{
		StopLists: make([]dto.StopListSummary, 0, len(lists)),
	}
	for _, l := range lists {
		summary := dto.StopListSummary{ID: l.ID, Name: l.Name, StopCount: len(l.Stops)}
		if len(l.Stops) > 0 {
			summary.OriginID = l.Stops[0].ID
		}
		res.StopLists = append(res.StopLists, summary)
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Optimize solves the stored list named in the path. The body is optional
// and may carry option overrides.
func (h *StopListHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "stop list id is required")
		return
	}

	var req dto.OptionsRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	list, route, err := h.Service.OptimizeStopList(r.Context(), id, toOverrides(req))
	if err != nil {
		writeServiceError(w, r, "optimize stop list", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(route, list.Stops))
}
