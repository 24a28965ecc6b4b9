package api

import (
	"fmt"
	"net/http"
)

func (a *Api) triggerNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	if !a.triggerLimiter.Allow() {
		a.rateLimitExceededResponse(w, r)
		return
	}

	if err := a.notifier.RunOnce(r.Context()); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("run notifications: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) pendingNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	reminders, err := a.notifier.Pending(r.Context())
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("pending notifications: %w", err))
		return
	}

	resp := map[string]interface{}{
		"notifications": mapSlice(reminders, mapToReminderResp),
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
