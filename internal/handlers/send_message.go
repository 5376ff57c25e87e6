package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkruczek/accounts-chat/internal/middlewares"
	"github.com/pkruczek/accounts-chat/internal/models"
	"github.com/pkruczek/accounts-chat/internal/validation"
)

// MessageSender defines the interface that the conversation service must
// implement for sending.
type MessageSender interface {
	Send(ctx context.Context, senderID, receiverID int64, content string) (*models.MessageDB, error)
}

// NewSendMessageHandler returns an HTTP handler for sending a message.
// @Summary Send a message
// @Description Appends a new unread message from the caller to the receiver.
// @Tags messages
// @Accept json
// @Produce json
// @Param sendMessageRequest body models.SendMessageRequest true "Receiver and content"
// @Success 201 {object} models.MessageView "Created message"
// @Failure 400 {object} validation.Errors "Invalid receiver or blank content"
// @Failure 403 "Not authenticated"
// @Router /accounts/messages [post]
func NewSendMessageHandler(svc MessageSender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.GetUserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		var req models.SendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeFieldErrors(w, http.StatusBadRequest, validation.Errors{
				"non_field_errors": {validation.MsgInvalid},
			})
			return
		}

		msg, err := svc.Send(ctx, userID, req.Receiver, req.Content)
		if err != nil {
			var verrs validation.Errors
			if errors.As(err, &verrs) {
				writeFieldErrors(w, http.StatusBadRequest, verrs)
				return
			}
			writeInternalError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(msg.View())
	}
}
