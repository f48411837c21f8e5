package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/vi-sinh-loi-be/internal/notify"
)

// NotificationsHandler streams a user's notifications over a websocket.
type NotificationsHandler struct {
	hub *notify.Hub
}

func NewNotificationsHandler(hub *notify.Hub) *NotificationsHandler {
	return &NotificationsHandler{hub: hub}
}

func (h *NotificationsHandler) Register(r chi.Router) {
	r.Get("/ws/notifications", h.serve)
}

func (h *NotificationsHandler) serve(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	h.hub.Serve(w, r, userID)
}
