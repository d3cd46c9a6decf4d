package sanitizer

import (
	"regexp"
	"strings"
)

var (
	dotRegex            = regexp.MustCompile(`\.+`)
	whitespaceRegex     = regexp.MustCompile(`\s+`)
	unsafeFilenameRegex = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f\s]`)
)

// Apply runs value through transforms in order.
func Apply[T any](value T, transforms ...func(T) T) T {
	for _, transform := range transforms {
		value = transform(value)
	}
	return value
}

// Compose returns a reusable pipeline of transforms.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}

// NormalizeEmail lowercases an address and collapses repeated dots in the
// local part. Input without exactly one "@" is returned trimmed and
// lowercased.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}
	local = strings.Trim(dotRegex.ReplaceAllString(local, "."), ".")
	return local + "@" + domain
}

// MaskEmail keeps the first local character and the domain, for logs.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return email
	}
	return local[:1] + strings.Repeat("*", len(local)-1) + "@" + domain
}

// NormalizeWhitespace collapses every whitespace run to one space and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// SanitizeFilename replaces path separators, reserved characters and
// whitespace with "_", trims dots, and caps the result at 255 bytes.
func SanitizeFilename(name string) string {
	safe := unsafeFilenameRegex.ReplaceAllString(strings.Trim(name, " ."), "_")
	if len(safe) > 255 {
		safe = safe[:255]
	}
	if safe == "" {
		return "file"
	}
	return safe
}
