package models

import (
	"time"
)

// MessageDB represents a message record in the database
type MessageDB struct {
	MessageID  int64     `json:"id" db:"message_id"`           // Primary key
	SenderID   int64     `json:"sender_id" db:"sender_id"`     // Sending account
	ReceiverID int64     `json:"receiver_id" db:"receiver_id"` // Receiving account
	Content    string    `json:"content" db:"content"`         // Message text
	SentAt     time.Time `json:"sent_at" db:"sent_at"`         // Set once at creation
	IsNew      bool      `json:"is_new" db:"is_new"`           // Unread flag, true until the receiver views the conversation
}

// View converts a database record into the API message representation.
func (m MessageDB) View() MessageView {
	return MessageView{
		ID:         m.MessageID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Datetime:   m.SentAt,
		IsNew:      m.IsNew,
	}
}

// MessageView is the API representation of a message
// swagger:model MessageView
type MessageView struct {
	// Message id
	// example: 1
	ID int64 `json:"id"`

	// Sender account id
	// example: 1
	SenderID int64 `json:"sender_id"`

	// Receiver account id
	// example: 2
	ReceiverID int64 `json:"receiver_id"`

	// Message text
	// example: Foo Bar
	Content string `json:"content"`

	// Time the message was sent
	Datetime time.Time `json:"datetime"`

	// Unread flag as of the moment the response was built
	// example: true
	IsNew bool `json:"is_new"`
}

// SendMessageRequest represents the JSON body for sending a message
// swagger:model SendMessageRequest
type SendMessageRequest struct {
	// Receiver account id
	// required: true
	// example: 2
	Receiver int64 `json:"receiver"`

	// Message text
	// required: true
	// example: Foo Bar
	Content string `json:"content"`
}

// UnreadResponse reports the number of unread messages for the caller
// swagger:model UnreadResponse
type UnreadResponse struct {
	// Unread message count
	// example: 1
	Unread int `json:"unread"`
}
