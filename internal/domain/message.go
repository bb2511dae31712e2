package domain

// Chat types
const (
	ChatGeneral = "general"
	ChatDirect  = "direct"
)

// CurrentUser is the sender/receiver name used for the signed-in user in direct chats
const CurrentUser = "me"

// Message is a chat message. Receiver is set only for direct messages.
type Message struct {
	ID       int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Text     string `gorm:"type:text" json:"text"`
	Sender   string `gorm:"size:200;index" json:"sender"`
	Time     string `gorm:"size:32" json:"time"` // display string, e.g. "9:00 AM"
	ChatType string `gorm:"size:16;index" json:"chatType"`
	Receiver string `gorm:"size:200" json:"receiver,omitempty"`
}

// TableName Specify table name
func (Message) TableName() string {
	return "chat_message"
}

// Peer returns the other party of a direct message as seen by the current user.
// It returns an empty string for general messages and messages not involving
// the current user.
func (m Message) Peer() string {
	if m.ChatType != ChatDirect {
		return ""
	}
	switch {
	case m.Sender == CurrentUser:
		return m.Receiver
	case m.Receiver == CurrentUser:
		return m.Sender
	}
	return ""
}
