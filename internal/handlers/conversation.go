package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pkruczek/accounts-chat/internal/middlewares"
	"github.com/pkruczek/accounts-chat/internal/models"
)

// ConversationGetter defines the interface that the conversation service
// must implement for the conversation view.
type ConversationGetter interface {
	Conversation(ctx context.Context, viewerID, otherID int64) ([]models.MessageDB, error)
}

// NewConversationHandler returns an HTTP handler for the conversation view.
// The response reflects unread flags as they were before this call: viewing
// marks the caller's received messages as read only after the payload is
// snapshotted.
// @Summary Conversation with another user
// @Description Returns every message touching the caller or the other party, newest first, then marks the caller's received messages as read.
// @Tags messages
// @Produce json
// @Param receiverID path int true "Other party account id"
// @Success 200 {array} models.MessageView "Messages, newest first"
// @Failure 403 "Not authenticated"
// @Router /accounts/messages/{receiverID} [get]
func NewConversationHandler(svc ConversationGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.GetUserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		otherID, err := strconv.ParseInt(chi.URLParam(r, "receiverID"), 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		messages, err := svc.Conversation(ctx, userID, otherID)
		if err != nil {
			writeInternalError(w, err)
			return
		}

		views := make([]models.MessageView, 0, len(messages))
		for _, msg := range messages {
			views = append(views, msg.View())
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(views)
	}
}
