package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/mailforge/pkg/validator"
)

type postmarkClient struct {
	client *postmark.Client
	from   string
	cfg    Config
}

// PostmarkOption adjusts the underlying Postmark client.
type PostmarkOption func(*postmark.Client)

// WithBaseURL points the client at another API endpoint.
func WithBaseURL(url string) PostmarkOption {
	return func(c *postmark.Client) { c.BaseURL = url }
}

// NewPostmarkClient creates a Sender backed by Postmark's transactional API.
func NewPostmarkClient(cfg Config, opts ...PostmarkOption) (Sender, error) {
	rules := []validator.Rule{
		validator.Required("PostmarkServerToken", cfg.PostmarkServerToken),
		validator.Required("PostmarkAccountToken", cfg.PostmarkAccountToken),
		validator.ValidEmail("SenderEmail", cfg.SenderEmail),
	}
	if cfg.ReplyTo != "" {
		rules = append(rules, validator.ValidEmail("ReplyTo", cfg.ReplyTo))
	}
	if err := validator.Apply(rules...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	client := postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	for _, opt := range opts {
		opt(client)
	}
	return &postmarkClient{client: client, from: fromAddress(cfg), cfg: cfg}, nil
}

// MustNewPostmarkClient panics on invalid config so that a misconfigured
// binary does not start.
func MustNewPostmarkClient(cfg Config, opts ...PostmarkOption) Sender {
	client, err := NewPostmarkClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// Send delivers msg with open tracking and HTML-only link tracking.
func (c *postmarkClient) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:       c.from,
		ReplyTo:    c.cfg.ReplyTo,
		To:         msg.To,
		Subject:    msg.Subject,
		Tag:        msg.Tag,
		HTMLBody:   msg.HTML,
		TextBody:   msg.Text,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(ErrFailedToSendEmail,
			fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message))
	}
	return nil
}
