package notifications

import (
	"github.com/claimwell/claims-api/domain"
)

// Message is one outbound notification. Body is already-rendered HTML; the
// plain-text alternative is derived from it at send time.
type Message struct {
	Subject   string
	Body      string
	FromName  string
	FromEmail string
	ToName    string
	ToEmail   string
}

type EmailService interface {
	Send(msg Message) error
}

// NewEmailMessage returns a message with the sender fields already set
func NewEmailMessage() Message {
	return Message{
		FromName:  domain.Env.AppName,
		FromEmail: domain.Env.EmailFromAddress,
	}
}
