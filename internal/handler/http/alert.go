package http

import (
	"net/http"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workkeeper-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AlertHandler interface {
	GetMyAlerts(w http.ResponseWriter, r *http.Request)
	GetUnreadCount(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
}

type alertHandlerImpl struct {
	alertService attendance.AlertService
}

func NewAlertHandler(alertService attendance.AlertService) AlertHandler {
	return &alertHandlerImpl{
		alertService: alertService,
	}
}

// GetMyAlerts implements AlertHandler.
func (h *alertHandlerImpl) GetMyAlerts(w http.ResponseWriter, r *http.Request) {
	result, err := h.alertService.GetMyAlerts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetUnreadCount implements AlertHandler.
func (h *alertHandlerImpl) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	result, err := h.alertService.GetUnreadCount(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MarkRead implements AlertHandler.
func (h *alertHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	result, err := h.alertService.MarkRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Alert marked as read", result)
}
