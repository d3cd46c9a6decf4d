package interpolate

import (
	"fmt"

	"github.com/cbroglie/mustache"
)

// HTML renders a logic-only template against data with HTML escaping for
// {{name}} and raw output for {{{name}}}. Unresolved names render as "".
func HTML(tmpl string, data map[string]any) (string, error) {
	return render(tmpl, false, data)
}

// Text renders a plain-text template such as a subject line. Values are
// inserted without HTML escaping.
func Text(tmpl string, data map[string]any) (string, error) {
	return render(tmpl, true, data)
}

func render(tmpl string, raw bool, data map[string]any) (string, error) {
	if tmpl == "" {
		return "", nil
	}
	t, err := mustache.ParseStringRaw(tmpl, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	out, err := t.Render(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return out, nil
}

// Names lists the distinct top-level variable names referenced by tmpl in
// order of first use.
func Names(tmpl string) ([]string, error) {
	t, err := mustache.ParseString(tmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	var names []string
	seen := map[string]bool{}
	var visit func(tags []mustache.Tag)
	visit = func(tags []mustache.Tag) {
		for _, tag := range tags {
			switch tag.Type() {
			case mustache.Variable, mustache.Section, mustache.InvertedSection:
				if name := tag.Name(); !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
			}
			if tag.Type() == mustache.Section || tag.Type() == mustache.InvertedSection {
				visit(tag.Tags())
			}
		}
	}
	visit(t.Tags())
	return names, nil
}
