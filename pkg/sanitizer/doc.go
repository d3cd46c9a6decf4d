// Package sanitizer holds the small string clean-up helpers shared by the
// render pipeline and the delivery adapters: address normalisation and
// masking, whitespace collapsing, and filesystem-safe names. Apply and
// Compose chain them.
//
//	clean := sanitizer.Compose(sanitizer.NormalizeWhitespace, strings.ToLower)
//	subject := clean(raw)
package sanitizer
