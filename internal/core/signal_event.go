package core

import "time"

// MessagingEvent is the closed set of callbacks raised by the messaging transport.
type MessagingEvent interface {
	messagingEvent()
}

type ChatMessage struct {
	ID     string    `json:"id"`
	From   string    `json:"from"`
	Nick   string    `json:"nick"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sentAt"`
}

type ChatMessageReceived struct {
	Messages []ChatMessage
}

type CustomMessageReceived struct {
	From string
	Type string
	Data string
}

type ControlMessageReceived struct {
	From    string
	Payload []byte
}

type GroupDismissed struct {
	GroupID string
}

type GroupOwnerChanged struct {
	GroupID string
	OwnerID string
}

func (ChatMessageReceived) messagingEvent()    {}
func (CustomMessageReceived) messagingEvent()  {}
func (ControlMessageReceived) messagingEvent() {}
func (GroupDismissed) messagingEvent()         {}
func (GroupOwnerChanged) messagingEvent()      {}
