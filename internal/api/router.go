package api

import (
	"net/http"

	"route-optimizer-service/internal/api/handlers"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// store may be nil, in which case /health only reports liveness.
func NewRouter(repo ports.StopListRepository, svc *services.RouteService, store handlers.Pinger) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Store: store}
	routeHandler := &handlers.RouteHandler{Service: svc}
	stopListHandler := &handlers.StopListHandler{Repo: repo, Service: svc}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/routes/optimize", routeHandler.Optimize)
	mux.HandleFunc("/routes/optimize/batch", routeHandler.OptimizeBatch)
	mux.HandleFunc("/stop-lists", stopListHandler.List)
	mux.HandleFunc("/stop-lists/{id}/optimize", stopListHandler.Optimize)

	return requestIDMiddleware(loggingMiddleware(mux))
}
