package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SergeyKozhin/study-planner-backend/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type contextKey string

const contextKeyEvent = contextKey("event")

var errCantRetrieveEvent = errors.New("can't retrieve event from context")

func (a *Api) eventCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "eventID"))
		if err != nil {
			a.notFoundResponse(w, r)
			return
		}

		event, err := a.eventsService.GetEventByID(r.Context(), id.String())
		if err != nil {
			switch {
			case errors.Is(err, model.ErrNoRecord):
				a.notFoundResponse(w, r)
			default:
				a.serverErrorResponse(w, r, fmt.Errorf("get event: %w", err))
			}
			return
		}

		eventCtx := context.WithValue(r.Context(), contextKeyEvent, event)
		next.ServeHTTP(w, r.WithContext(eventCtx))
	})
}
