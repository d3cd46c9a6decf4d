// Package render is the email render orchestrator.
//
// A Renderer ties the pipeline together: the markup assembler, the HTML
// compiler with its result cache, variable validation, interpolation,
// guardrails and plaintext extraction. It serves two callers.
//
// The editor previews a document directly:
//
//	out, err := r.Preview(ctx, doc)
//
// The send path publishes a document once and renders the resulting
// snapshot per recipient:
//
//	snap, err := r.Publish(ctx, doc, templateID)
//	out, err := r.Render(ctx, snap, render.Recipient{
//		Variables: map[string]any{"firstName": "Ann"},
//		Mode:      variables.Strict,
//	})
//
// RenderBatch fans renders out with bounded concurrency. Warnings never
// fail a render; a non-empty guardrail error list fails with
// ErrGuardrailViolation.
package render
