package validator

import (
	"fmt"
	"net/mail"
	"net/url"
	"slices"
	"strings"
)

// Required fails when value is blank after trimming.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{Field: field, Message: "is required", Code: "validation.required"},
	}
}

// Present fails when ok is false. It is the map-key form of Required.
func Present(field string, ok bool) Rule {
	return Rule{
		Check: func() bool { return ok },
		Error: ValidationError{Field: field, Message: "is required", Code: "validation.required"},
	}
}

// Absent fails when ok is true.
func Absent(field string, ok bool) Rule {
	return Rule{
		Check: func() bool { return !ok },
		Error: ValidationError{Field: field, Message: "is not allowed", Code: "validation.not_allowed"},
	}
}

func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return len(value) <= max },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Code:    "validation.max_length",
		},
	}
}

// ValidEmail accepts a bare RFC 5322 address whose domain has a dot.
// Display-name forms like "Ann <a@b.c>" are accepted too.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(strings.TrimSpace(value))
			if err != nil {
				return false
			}
			local, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || local == "" {
				return false
			}
			return !slices.Contains(strings.Split(domain, "."), "") && strings.Contains(domain, ".")
		},
		Error: ValidationError{Field: field, Message: "must be a valid email address", Code: "validation.email"},
	}
}

// ValidURLWithScheme requires an absolute URL with a host and one of schemes.
func ValidURLWithScheme(field, value string, schemes ...string) Rule {
	return Rule{
		Check: func() bool {
			u, err := url.Parse(strings.TrimSpace(value))
			if err != nil || u.Host == "" {
				return false
			}
			return slices.Contains(schemes, strings.ToLower(u.Scheme))
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be a URL with scheme %s", strings.Join(schemes, " or ")),
			Code:    "validation.url_scheme",
		},
	}
}

// OneOf fails unless value is in allowed.
func OneOf(field, value string, allowed ...string) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(allowed, value) },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
			Code:    "validation.one_of",
		},
	}
}
