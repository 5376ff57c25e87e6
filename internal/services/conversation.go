package services

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/pkruczek/accounts-chat/internal/logger"
	"github.com/pkruczek/accounts-chat/internal/models"
	"github.com/pkruczek/accounts-chat/internal/validation"
)

// MessageReader defines read-only message operations.
type MessageReader interface {
	CountUnread(ctx context.Context, userID int64) (int, error)
	ListConversation(ctx context.Context, viewerID, otherID int64) ([]models.MessageDB, error)
}

// MessageWriter defines message writes.
type MessageWriter interface {
	Save(ctx context.Context, senderID, receiverID int64, content string) (*models.MessageDB, error)
	MarkRead(ctx context.Context, receiverID int64, messageIDs []int64) error
}

// AccountReader resolves receiver ids when sending.
type AccountReader interface {
	GetByID(ctx context.Context, userID int64) (*models.UserDB, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// ConversationService handles sending, unread counting and the
// read-triggers-mark-as-read conversation view.
type ConversationService struct {
	reader      MessageReader
	writer      MessageWriter
	accounts    AccountReader
	kafkaWriter KafkaWriter
}

// NewConversationService creates a new ConversationService. kafkaWriter may
// be nil; events are then skipped.
func NewConversationService(reader MessageReader, writer MessageWriter, accounts AccountReader, kafkaWriter KafkaWriter) *ConversationService {
	return &ConversationService{
		reader:      reader,
		writer:      writer,
		accounts:    accounts,
		kafkaWriter: kafkaWriter,
	}
}

// publishMessageSent publishes a message.sent event to Kafka. Best-effort:
// failures are logged and never surfaced to the sender.
func (svc *ConversationService) publishMessageSent(ctx context.Context, msg *models.MessageDB) {
	if svc.kafkaWriter == nil {
		return
	}

	event := models.MessageSentEvent{
		MessageID:  msg.MessageID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		SentAt:     msg.SentAt.Unix(),
		Event:      "message.sent",
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal message event", "message_id", msg.MessageID, "error", err)
		return
	}

	kafkaMsg := kafka.Message{
		Key:   []byte(strconv.FormatInt(msg.MessageID, 10)),
		Value: data,
	}

	if err := svc.kafkaWriter.WriteMessages(ctx, kafkaMsg); err != nil {
		logger.Log.Errorw("failed to publish message event", "message_id", msg.MessageID, "error", err)
	} else {
		logger.Log.Infow("message event published", "message_id", msg.MessageID)
	}
}

// Send appends a new unread message from sender to receiver and returns the
// stored record.
func (svc *ConversationService) Send(ctx context.Context, senderID, receiverID int64, content string) (*models.MessageDB, error) {
	verrs := validation.Errors{}
	if strings.TrimSpace(content) == "" {
		verrs.Add("content", validation.MsgBlank)
	}

	receiver, err := svc.accounts.GetByID(ctx, receiverID)
	if err != nil {
		logger.Log.Errorw("failed to resolve receiver", "receiver_id", receiverID, "err", err)
		return nil, err
	}
	if receiver == nil {
		verrs.Add("receiver", validation.MsgInvalidPK(receiverID))
	}

	if len(verrs) > 0 {
		return nil, verrs
	}

	msg, err := svc.writer.Save(ctx, senderID, receiverID, content)
	if err != nil {
		logger.Log.Errorw("failed to save message", "err", err)
		return nil, err
	}

	svc.publishMessageSent(ctx, msg)

	return msg, nil
}

// UnreadCount returns the number of unread messages addressed to the user.
// Pure read, no side effect.
func (svc *ConversationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	count, err := svc.reader.CountUnread(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to count unread messages", "user_id", userID, "err", err)
		return 0, err
	}
	return count, nil
}

// Conversation returns every message touching either id, newest first, then
// marks the returned messages addressed to the viewer as read. The returned
// slice is the pre-mutation snapshot: unread flags in it reflect the state
// before the bulk update.
func (svc *ConversationService) Conversation(ctx context.Context, viewerID, otherID int64) ([]models.MessageDB, error) {
	messages, err := svc.reader.ListConversation(ctx, viewerID, otherID)
	if err != nil {
		logger.Log.Errorw("failed to list conversation", "viewer_id", viewerID, "other_id", otherID, "err", err)
		return nil, err
	}

	var unreadIDs []int64
	for _, msg := range messages {
		if msg.ReceiverID == viewerID && msg.IsNew {
			unreadIDs = append(unreadIDs, msg.MessageID)
		}
	}

	if len(unreadIDs) > 0 {
		if err := svc.writer.MarkRead(ctx, viewerID, unreadIDs); err != nil {
			logger.Log.Errorw("failed to mark messages as read", "viewer_id", viewerID, "err", err)
			return nil, err
		}
	}

	return messages, nil
}
