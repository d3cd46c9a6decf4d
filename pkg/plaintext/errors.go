package plaintext

import "errors"

var ErrParse = errors.New("plaintext.errors.parse_failed")
