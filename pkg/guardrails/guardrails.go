package guardrails

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"slices"
	"strings"

	nethtml "golang.org/x/net/html"
)

// DefaultSizeLimit is the HTML size above which Gmail clips a message.
const DefaultSizeLimit = 102 * 1024

// Result is the guarded HTML plus findings. Errors is reserved for checks
// that block delivery; none of the current checks populate it.
type Result struct {
	HTML      string   `json:"html"`
	Warnings  []string `json:"warnings"`
	Errors    []string `json:"errors"`
	SizeBytes int      `json:"sizeBytes"`
}

// HasErrors reports whether any blocking finding was recorded.
func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Option configures Check.
type Option func(*options)

type options struct {
	sizeLimit int
}

// WithSizeLimit overrides DefaultSizeLimit. Non-positive values disable the
// size check.
func WithSizeLimit(n int) Option {
	return func(o *options) { o.sizeLimit = n }
}

// Check runs the guardrails over final HTML in a fixed order: anchor rel
// hardening, missing alt text, insecure URLs, then size.
func Check(doc string, opts ...Option) (Result, error) {
	o := &options{sizeLimit: DefaultSizeLimit}
	for _, opt := range opts {
		opt(o)
	}

	scan, err := rewriteAnchors(doc)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		HTML:     scan.html,
		Warnings: []string{},
		Errors:   []string{},
	}
	if len(scan.missingAlt) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d image(s) missing alt text: %s",
			len(scan.missingAlt), strings.Join(scan.missingAlt, ", ")))
	}
	if len(scan.insecure) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d insecure http URL(s): %s",
			len(scan.insecure), strings.Join(scan.insecure, ", ")))
	}

	res.SizeBytes = len(res.HTML)
	if o.sizeLimit > 0 && res.SizeBytes > o.sizeLimit {
		res.Warnings = append(res.Warnings, fmt.Sprintf("HTML is %d bytes, above the %d byte limit where Gmail clips messages",
			res.SizeBytes, o.sizeLimit))
	}
	return res, nil
}

type scanResult struct {
	html       string
	missingAlt []string
	insecure   []string
}

// rewriteAnchors copies doc token by token. Only <a> start tags that need a
// noopener token are regenerated; every other byte is written unchanged.
func rewriteAnchors(doc string) (scanResult, error) {
	var (
		out bytes.Buffer
		res scanResult
	)
	out.Grow(len(doc) + 64)

	z := nethtml.NewTokenizer(strings.NewReader(doc))
	for {
		tt := z.Next()
		if tt == nethtml.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return scanResult{}, fmt.Errorf("%w: %w", ErrMalformedHTML, z.Err())
		}

		raw := slices.Clone(z.Raw())
		if tt != nethtml.StartTagToken && tt != nethtml.SelfClosingTagToken {
			out.Write(raw)
			continue
		}

		name, hasAttr := z.TagName()
		switch string(name) {
		case "a":
			attrs := readAttrs(z, hasAttr)
			href, ok := attrs.get("href")
			if !ok || strings.TrimSpace(href) == "" {
				out.Write(raw)
				continue
			}
			if insecure(href) {
				res.insecure = append(res.insecure, href)
			}
			rel, _ := attrs.get("rel")
			if hasToken(rel, "noopener") {
				out.Write(raw)
				continue
			}
			attrs.set("rel", strings.TrimSpace(rel+" noopener"))
			out.WriteString(attrs.tag("a", tt == nethtml.SelfClosingTagToken))

		case "img":
			attrs := readAttrs(z, hasAttr)
			src, _ := attrs.get("src")
			if alt, _ := attrs.get("alt"); strings.TrimSpace(alt) == "" {
				res.missingAlt = append(res.missingAlt, orPlaceholder(src))
			}
			if insecure(src) {
				res.insecure = append(res.insecure, src)
			}
			out.Write(raw)

		default:
			out.Write(raw)
		}
	}

	res.html = out.String()
	return res, nil
}

type attrList []nethtml.Attribute

func readAttrs(z *nethtml.Tokenizer, more bool) attrList {
	var attrs attrList
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		attrs = append(attrs, nethtml.Attribute{Key: string(key), Val: string(val)})
	}
	return attrs
}

func (l attrList) get(key string) (string, bool) {
	for _, a := range l {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func (l *attrList) set(key, val string) {
	for i := range *l {
		if (*l)[i].Key == key {
			(*l)[i].Val = val
			return
		}
	}
	*l = append(*l, nethtml.Attribute{Key: key, Val: val})
}

func (l attrList) tag(name string, selfClosing bool) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(name)
	for _, a := range l {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Val))
		b.WriteByte('"')
	}
	if selfClosing {
		b.WriteString(" /")
	}
	b.WriteByte('>')
	return b.String()
}

func hasToken(list, token string) bool {
	for _, f := range strings.Fields(list) {
		if strings.EqualFold(f, token) {
			return true
		}
	}
	return false
}

func insecure(u string) bool {
	u = strings.TrimSpace(u)
	return len(u) >= 5 && strings.EqualFold(u[:5], "http:")
}

func orPlaceholder(src string) string {
	if strings.TrimSpace(src) == "" {
		return "(no src)"
	}
	return src
}
