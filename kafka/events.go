package kafka

import "time"

// SessionLoggedOutEvent tells the chat service to tear down any live
// conversation tied to the session and forget its anonymous identifier
type SessionLoggedOutEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// CartCheckedOutEvent records a cart handed off to the order API
type CartCheckedOutEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OwnerID    string    `json:"owner_id"`
	OrderID    string    `json:"order_id"`
	TotalItems int       `json:"total_items"`
	TotalPrice string    `json:"total_price"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeSessionLoggedOut = "session.logged_out"
	EventTypeCartCheckedOut   = "cart.checked_out"
)

// Kafka topics
const (
	TopicSessionLoggedOut = "session-logged-out"
	TopicCartCheckedOut   = "cart-checked-out"
)
