// Package guardrails runs the final safety pass over rendered email HTML.
//
// Check hardens every linked anchor with rel="noopener", then reports
// images without alt text, anchors or images served over plain http, and
// documents large enough to be clipped by Gmail. Findings are warnings: the
// returned HTML is always usable and only anchor start tags are rewritten.
package guardrails
