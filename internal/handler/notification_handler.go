// internal/handler/notification_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gamedia/editorial-backend/internal/repository"
)

// NotificationHandler exposes the read-only ledger endpoints used by the
// back office and by operators checking what went out.
type NotificationHandler struct {
	Repo repository.NotificationRepositoryInterface
}

func NewNotificationHandler(repo repository.NotificationRepositoryInterface) *NotificationHandler {
	return &NotificationHandler{Repo: repo}
}

func (h *NotificationHandler) ListNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	page := 1
	pageSize := 20
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && ps > 0 && ps <= 100 {
		pageSize = ps
	}
	kind := r.URL.Query().Get("kind")

	notifications, total, err := h.Repo.List(r.Context(), kind, (page-1)*pageSize, pageSize)
	if err != nil {
		http.Error(w, "failed to fetch notifications: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": notifications,
		"pagination": map[string]interface{}{
			"page":        page,
			"page_size":   pageSize,
			"total_count": total,
			"total_pages": (total + pageSize - 1) / pageSize,
		},
	})
}

func (h *NotificationHandler) NotificationStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Repo.Stats(r.Context())
	if err != nil {
		http.Error(w, "failed to fetch stats: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
