package guardrails

import "errors"

var ErrMalformedHTML = errors.New("guardrails.errors.malformed_html")
