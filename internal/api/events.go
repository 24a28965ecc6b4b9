package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/SergeyKozhin/study-planner-backend/internal/model"
)

const clockFormat = "15:04"

func (a *Api) createEventHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		UserID        *int64           `json:"user_id" validate:"omitempty,gt=0"`
		Title         string           `json:"title" validate:"required,max=200"`
		Date          string           `json:"date" validate:"required,datetime=2006-01-02"`
		Time          string           `json:"time" validate:"omitempty,datetime=15:04"`
		Notifications notificationsDTO `json:"notifications"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if err := a.validate.Struct(req); err != nil {
		errs, ok := validationErrors(err)
		if !ok {
			a.serverErrorResponse(w, r, fmt.Errorf("validate event: %w", err))
			return
		}
		a.failedValidationResponse(w, r, errs)
		return
	}

	if req.Notifications.AtTime && req.Time == "" {
		a.failedValidationResponse(w, r, map[string]string{"time": "must be provided when at_time notification is enabled"})
		return
	}

	date, _ := time.Parse(dateFormat, req.Date)

	var clock string
	if req.Time != "" {
		t, _ := time.Parse(clockFormat, req.Time)
		clock = t.Format(clockFormat)
	}

	event, err := a.eventsService.CreateEvent(r.Context(), &model.EventCreate{
		UserID: req.UserID,
		Title:  req.Title,
		Date:   date,
		Time:   clock,
		Notifications: model.Notifications{
			DayBefore: req.Notifications.DayBefore,
			DayOf:     req.Notifications.DayOf,
			AtTime:    req.Notifications.AtTime,
		},
	})
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("create event: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusCreated, mapToEventResp(event), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getEventsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseEventsQuery(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	events, err := a.eventsService.GetEvents(r.Context(), *filter)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get events: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapSlice(events, mapToEventResp), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getEventHandler(w http.ResponseWriter, r *http.Request) {
	event, ok := r.Context().Value(contextKeyEvent).(*model.Event)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveEvent)
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToEventResp(event), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteEventHandler(w http.ResponseWriter, r *http.Request) {
	event, ok := r.Context().Value(contextKeyEvent).(*model.Event)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveEvent)
		return
	}

	if err := a.eventsService.DeleteEvent(r.Context(), event.ID); err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("delete event: %w", err))
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseEventsQuery(r *http.Request) (*model.EventsFilter, error) {
	res := &model.EventsFilter{}

	if v := r.URL.Query().Get("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %v", v)
		}
		res.UserID = &id
	}

	return res, nil
}
