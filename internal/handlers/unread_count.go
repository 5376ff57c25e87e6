package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkruczek/accounts-chat/internal/middlewares"
	"github.com/pkruczek/accounts-chat/internal/models"
)

// UnreadCounter defines the interface that the conversation service must
// implement for unread reporting.
type UnreadCounter interface {
	UnreadCount(ctx context.Context, userID int64) (int, error)
}

// NewUnreadCountHandler returns an HTTP handler reporting the caller's
// unread message count.
// @Summary Unread message count
// @Description Returns the number of messages addressed to the caller that have not been read yet. Pure read, no side effect.
// @Tags messages
// @Produce json
// @Success 200 {object} models.UnreadResponse "Unread count"
// @Failure 403 "Not authenticated"
// @Router /accounts/messages [get]
func NewUnreadCountHandler(svc UnreadCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.GetUserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		count, err := svc.UnreadCount(ctx, userID)
		if err != nil {
			writeInternalError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.UnreadResponse{
			Unread: count,
		})
	}
}
