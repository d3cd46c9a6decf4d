package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/mailforge/pkg/async"
	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/interpolate"
	"github.com/dmitrymomot/mailforge/pkg/logger"
	"github.com/dmitrymomot/mailforge/pkg/variables"
)

// Recipient carries per-recipient render input. Subject and Preheader
// override the snapshot values when set. To is only used for logging and
// by callers that deliver the result.
type Recipient struct {
	To        string         `json:"to,omitempty"`
	Variables map[string]any `json:"variables"`
	Mode      variables.Mode `json:"mode,omitempty"`
	Subject   *string        `json:"subject,omitempty"`
	Preheader *string        `json:"preheader,omitempty"`
}

// RenderOutput is one recipient's final email.
type RenderOutput struct {
	HTML          string   `json:"html"`
	Plaintext     string   `json:"plaintext"`
	Warnings      []string `json:"warnings"`
	UsedSubject   string   `json:"usedSubject"`
	UsedPreheader *string  `json:"usedPreheader,omitempty"`
	SizeBytes     int      `json:"sizeBytes"`
}

// Render produces the final email for one recipient. Variables are
// validated before any HTML work; a validation failure wraps
// ErrInvalidVariables and variables.Messages lists the field errors.
func (r *Renderer) Render(ctx context.Context, snap document.TemplateSnapshot, rcpt Recipient) (RenderOutput, error) {
	start := time.Now()
	log := r.logger.With(
		logger.Component("render"),
		logger.SnapshotID(snap.SnapshotID),
	)
	if rcpt.To != "" {
		log = log.With(logger.Recipient(rcpt.To))
	}

	if strings.TrimSpace(snap.Markup) == "" {
		return RenderOutput{}, fmt.Errorf("%w: snapshot has no markup", ErrInvalidSnapshot)
	}

	mode := rcpt.Mode
	if mode == "" {
		mode = variables.Strict
	}
	data, err := variables.Validate(rcpt.Variables, snap.VariablesSchema, mode)
	if err != nil {
		log.DebugContext(ctx, "variables rejected", logger.Messages("errors", variables.Messages(err)))
		if errors.Is(err, variables.ErrInvalidVariables) {
			return RenderOutput{}, fmt.Errorf("%w: %w", ErrInvalidVariables, err)
		}
		return RenderOutput{}, err
	}

	compiled := r.compiler.ToHTML(ctx, snap.Markup)
	if compiled.Err != nil {
		return RenderOutput{}, fmt.Errorf("%w: %w", ErrCompileFailed, compiled.Err)
	}

	html, err := interpolate.HTML(compiled.HTML, data)
	if err != nil {
		return RenderOutput{}, fmt.Errorf("%w: %w", ErrInterpolation, err)
	}

	final, err := r.finish(ctx, html)
	if err != nil {
		return RenderOutput{}, err
	}

	out := RenderOutput{
		HTML:      final.HTML,
		Plaintext: final.Plaintext,
		Warnings:  append(append([]string{}, compiled.Warnings...), final.Warnings...),
		SizeBytes: final.SizeBytes,
	}

	subject := firstOr(snap.SubjectLines, "")
	if rcpt.Subject != nil {
		subject = *rcpt.Subject
	}
	if out.UsedSubject, err = interpolate.Text(subject, data); err != nil {
		return RenderOutput{}, fmt.Errorf("%w: subject: %w", ErrInterpolation, err)
	}

	preheader := snap.Preheader
	if rcpt.Preheader != nil {
		preheader = *rcpt.Preheader
	}
	if preheader != "" {
		p, err := interpolate.Text(preheader, data)
		if err != nil {
			return RenderOutput{}, fmt.Errorf("%w: preheader: %w", ErrInterpolation, err)
		}
		out.UsedPreheader = &p
	}

	log.DebugContext(ctx, "recipient rendered",
		logger.SizeBytes(out.SizeBytes),
		logger.Warnings(len(out.Warnings)),
		logger.Duration(time.Since(start)),
	)
	return out, nil
}

// BatchResult is the outcome for the recipient at Index.
type BatchResult struct {
	Index  int          `json:"index"`
	Output RenderOutput `json:"output"`
	Err    error        `json:"-"`
}

// RenderBatch renders every recipient with at most Config.BatchConcurrency
// renders in flight. Results are in input order; one failure does not
// affect the others.
func (r *Renderer) RenderBatch(ctx context.Context, snap document.TemplateSnapshot, rcpts []Recipient) []BatchResult {
	futures := async.Map(ctx, rcpts, r.cfg.BatchConcurrency, func(ctx context.Context, rc Recipient) (RenderOutput, error) {
		return r.Render(ctx, snap, rc)
	})

	settled := async.WaitAll(futures...)
	results := make([]BatchResult, len(settled))
	failed := 0
	for i, s := range settled {
		results[i] = BatchResult{Index: i, Output: s.Value, Err: s.Err}
		if s.Err != nil {
			failed++
		}
	}

	r.logger.InfoContext(ctx, "batch rendered",
		logger.Component("render"),
		logger.SnapshotID(snap.SnapshotID),
		logger.Errors(async.FirstError(settled)),
		"recipients", len(rcpts),
		"failed", failed,
	)
	return results
}

func firstOr(s []string, def string) string {
	if len(s) == 0 {
		return def
	}
	return s[0]
}
