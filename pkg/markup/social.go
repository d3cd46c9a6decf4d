package markup

import (
	"html"
	"strconv"
	"strings"

	"github.com/dmitrymomot/mailforge/pkg/document"
)

const (
	defaultIconSize    = 32
	defaultIconSpacing = 8
)

func (c *compiler) social(n *document.BlockNode) (string, Diagnostics) {
	var diag Diagnostics
	props, ok := n.PropsOrDefault().(*document.SocialIconsProps)
	if !ok {
		props = &document.SocialIconsProps{}
	}
	if len(props.Icons) == 0 {
		diag = warnf("social icons block %q has no icons", n.ID)
	}
	attrs := c.attrs(n)
	align, _ := attrs.Get(attrAlign)
	return element(TagText, attrs, socialTable(props, align)), diag
}

// socialTable renders the icon list as a presentation table, since the
// markup's own social component cannot place labels below icons.
func socialTable(p *document.SocialIconsProps, align string) string {
	if len(p.Icons) == 0 {
		return ""
	}
	if align == "" {
		align = "center"
	}
	size := pixels(p.IconSize, defaultIconSize)
	gap := pixels(p.Spacing, defaultIconSpacing) / 2
	vertical := p.Layout == document.LayoutVertical

	var sb strings.Builder
	sb.WriteString(`<table role="presentation" cellpadding="0" cellspacing="0" border="0" align="` + html.EscapeString(align) + `" style="border-collapse:collapse;">`)
	if !vertical {
		sb.WriteString("<tr>")
	}
	for _, icon := range p.Icons {
		if vertical {
			sb.WriteString(`<tr><td align="` + html.EscapeString(align) + `" style="padding:` + strconv.Itoa(gap) + `px 0;">`)
		} else {
			sb.WriteString(`<td valign="middle" style="padding:0 ` + strconv.Itoa(gap) + `px;">`)
		}
		sb.WriteString(socialCell(icon, p, size))
		sb.WriteString("</td>")
		if vertical {
			sb.WriteString("</tr>")
		}
	}
	if !vertical {
		sb.WriteString("</tr>")
	}
	sb.WriteString("</table>")
	return sb.String()
}

func socialCell(icon document.SocialIcon, p *document.SocialIconsProps, size int) string {
	name := icon.Label
	if name == "" {
		name = icon.Platform
	}
	var img string
	if icon.IconSrc != "" {
		px := strconv.Itoa(size)
		img = `<img src="` + html.EscapeString(icon.IconSrc) + `" alt="` + html.EscapeString(name) +
			`" width="` + px + `" height="` + px + `" style="display:block;border:0;width:` + px + `px;height:` + px + `px;" />`
	}
	showLabel := p.ShowLabels || img == ""
	if !showLabel {
		return linkTo(icon.Href, img)
	}
	label := `<span style="color:inherit;">` + html.EscapeString(name) + `</span>`
	if img == "" {
		return linkTo(icon.Href, label)
	}
	if p.LabelPosition == document.LabelBelow {
		return linkTo(icon.Href, img) +
			`<div style="padding-top:4px;text-align:center;">` + linkTo(icon.Href, label) + `</div>`
	}
	return `<table role="presentation" cellpadding="0" cellspacing="0" border="0"><tr><td valign="middle">` +
		linkTo(icon.Href, img) +
		`</td><td valign="middle" style="padding-left:6px;">` +
		linkTo(icon.Href, label) +
		`</td></tr></table>`
}

func linkTo(href, inner string) string {
	if href == "" {
		return inner
	}
	return `<a href="` + html.EscapeString(href) + `" target="_blank" style="color:inherit;text-decoration:none;">` + inner + `</a>`
}

func pixels(v document.Value, fallback int) int {
	if f, ok := v.Number(); ok && f > 0 {
		return int(f)
	}
	if s, ok := v.Text(); ok {
		if n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "px")); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
