package markup

import "fmt"

// Diagnostics are the soft warnings and hard errors produced while
// compiling one subtree. They are returned by value and merged upward.
type Diagnostics struct {
	Warnings []string
	Errors   []string
}

// Merge returns the concatenation of d and o.
func (d Diagnostics) Merge(o Diagnostics) Diagnostics {
	if len(o.Warnings) == 0 && len(o.Errors) == 0 {
		return d
	}
	return Diagnostics{
		Warnings: append(append([]string(nil), d.Warnings...), o.Warnings...),
		Errors:   append(append([]string(nil), d.Errors...), o.Errors...),
	}
}

// HasErrors reports whether any hard error was recorded.
func (d Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

func warnf(format string, args ...any) Diagnostics {
	return Diagnostics{Warnings: []string{fmt.Sprintf(format, args...)}}
}

func errorf(sentinel error, format string, args ...any) Diagnostics {
	return Diagnostics{Errors: []string{fmt.Sprintf("%v: %s", sentinel, fmt.Sprintf(format, args...))}}
}
