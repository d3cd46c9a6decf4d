package email

import (
	"cmp"
	"context"
	"fmt"
	"net/mail"

	"github.com/dmitrymomot/mailforge/pkg/validator"
)

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is everything a transport needs: a recipient, the subject and
// both bodies.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text,omitempty"`
	Tag     string `json:"tag,omitempty"`
}

// Validate checks that the message can be handed to a transport.
func (m Message) Validate() error {
	if err := validator.Apply(
		validator.Required("to", m.To),
		validator.ValidEmail("to", m.To),
		validator.Required("subject", m.Subject),
		validator.MaxLen("subject", m.Subject, 2000),
		validator.Required("html", m.HTML),
	); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	return nil
}

// New builds the transport selected by cfg.Provider.
func New(cfg Config) (Sender, error) {
	provider := cmp.Or(cfg.Provider, ProviderDev)
	if err := validator.Apply(validator.OneOf("provider", provider, ProviderPostmark, ProviderDev)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch provider {
	case ProviderPostmark:
		return NewPostmarkClient(cfg)
	default:
		return NewDevSender(cfg.DevDir), nil
	}
}

func fromAddress(cfg Config) string {
	if cfg.SenderName == "" {
		return cfg.SenderEmail
	}
	return (&mail.Address{Name: cfg.SenderName, Address: cfg.SenderEmail}).String()
}
