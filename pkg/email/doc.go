// Package email hands rendered messages to a delivery transport.
//
// A Message carries the recipient, subject, HTML body and plaintext body
// produced by the render pipeline. Two Senders exist: a Postmark client for
// real delivery and DevSender, which writes .html, .txt and .json files to
// a directory for local inspection. New picks one from Config.Provider.
//
//	sender, err := email.New(cfg)
//	if err != nil {
//		// handle
//	}
//	err = sender.Send(ctx, email.Message{
//		To:      "ann@example.com",
//		Subject: out.UsedSubject,
//		HTML:    out.HTML,
//		Text:    out.Plaintext,
//	})
//
// Errors wrap ErrInvalidMessage, ErrInvalidConfig or ErrFailedToSendEmail.
// Retries are the caller's concern.
package email
