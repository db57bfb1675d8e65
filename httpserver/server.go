// Package httpserver exposes the two pipeline endpoints over HTTP.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"dinneragent"
	"dinneragent/planner"
)

// PlanService is the surface the handlers need from the planner.
type PlanService interface {
	Generate(ctx context.Context) (planner.PlanResult, error)
	Cook(ctx context.Context, mealID string) (planner.CookResult, error)
}

type Server struct {
	svc    PlanService
	server *http.Server
}

func New(addr string, svc PlanService) *Server {
	s := &Server{svc: svc}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Non-POST methods on these routes get chi's default 405.
	r.Post("/generate-dinner", s.handleGenerate)
	r.Post("/cook-meal", s.handleCook)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	slog.Info("SERVER: Listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.Generate(r.Context())
	if err != nil {
		if errors.Is(err, dinneragent.ErrNoItemsInStock) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"error":   err.Error(),
				"message": "Add items to INVENTORY and set In stock = true.",
			})
			return
		}
		slog.Error("SERVER: Plan generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"dateLine":      result.DateLine,
		"meals":         result.Meals,
		"encouragement": result.Encouragement,
	})
}

func (s *Server) handleCook(w http.ResponseWriter, r *http.Request) {
	mealID := r.URL.Query().Get("meal_id")

	result, err := s.svc.Cook(r.Context(), mealID)
	if err != nil {
		if isCookValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		slog.Error("SERVER: Cook failed", "meal_id", mealID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Marked %d of %d items as used for %s.", result.Updated, len(result.Requested), result.Title),
		"meal":    result.Title,
		"used":    result.Requested,
	})
}

// isCookValidationError separates the consumer's 400-class failures from
// unexpected faults.
func isCookValidationError(err error) bool {
	return errors.Is(err, dinneragent.ErrInvalidMealID) ||
		errors.Is(err, dinneragent.ErrNoRunFound) ||
		errors.Is(err, dinneragent.ErrRunJSONInvalid) ||
		errors.Is(err, dinneragent.ErrMealNotFound) ||
		errors.Is(err, dinneragent.ErrNoItemsForMeal)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("SERVER: Failed to encode response", "error", err)
	}
}
