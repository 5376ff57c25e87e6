package models

// MessageSentEvent is published to Kafka after a message is persisted.
// Delivery is best-effort; consumers (notification fan-out, analytics)
// must tolerate gaps.
type MessageSentEvent struct {
	MessageID  int64  `json:"message_id"`
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	SentAt     int64  `json:"sent_at"` // Unix seconds
	Event      string `json:"event"`   // always "message.sent"
}
