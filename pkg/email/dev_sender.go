package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrymomot/mailforge/pkg/sanitizer"
)

// DevSender writes each message to disk instead of delivering it: the HTML
// body, the text body and a JSON metadata file share one base name.
type DevSender struct {
	dir string
	now func() time.Time
}

// NewDevSender creates a DevSender writing under dir, created on demand.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir, now: time.Now}
}

type devMetadata struct {
	Timestamp string `json:"timestamp"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
	HTMLBytes int    `json:"html_bytes"`
	TextBytes int    `json:"text_bytes"`
}

// Send validates msg and writes it out. The base name is a timestamp plus
// the tag, or the subject when there is no tag.
func (d *DevSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %w", ErrFailedToSendEmail, err)
	}

	now := d.now()
	label := msg.Tag
	if label == "" {
		label = msg.Subject
	}
	base := now.Format("20060102_150405.000") + "_" + strings.ToLower(sanitizer.SanitizeFilename(label))

	meta, err := json.MarshalIndent(devMetadata{
		Timestamp: now.Format(time.RFC3339),
		To:        msg.To,
		Subject:   msg.Subject,
		Tag:       msg.Tag,
		HTMLBytes: len(msg.HTML),
		TextBytes: len(msg.Text),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal metadata: %w", ErrFailedToSendEmail, err)
	}

	files := []struct {
		ext  string
		body []byte
	}{
		{".html", []byte(msg.HTML)},
		{".txt", []byte(msg.Text)},
		{".json", meta},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(d.dir, base+f.ext), f.body, 0o644); err != nil {
			return fmt.Errorf("%w: failed to write %s file: %w", ErrFailedToSendEmail, f.ext, err)
		}
	}
	return nil
}
