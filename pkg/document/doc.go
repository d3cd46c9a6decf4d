// Package document defines the boundary types of the email compiler: the
// editor's block tree (Document, BlockNode), the flat element document used by
// the secondary front end, and the immutable TemplateSnapshot consumed by the
// per-recipient render path.
//
// Block properties are a tagged union. Every BlockType decodes its JSON
// property bag into its own variant (TextProps, ButtonProps, ...), composed
// from shared groups:
//
//   - CommonStyle: fill, border, radius, corners, opacity, padding, align
//   - Typography: font size, weight, alignment, line height, spacing, family, color
//   - Size: src, alt, width, height
//   - Linkable: optional href with a new-window flag
//
// Converters discover groups through the small carrier interfaces
// (TypographyCarrier, SizeCarrier, LinkCarrier, AccessibilityCarrier), so a
// missing group simply produces no attributes.
//
// Dynamic scalars are held in Value, which implements the shared formatting
// rule: numbers render with a px suffix, booleans as "true"/"false", strings
// verbatim, and objects or null as an empty string.
//
// # Usage
//
//	doc, err := document.Decode(data)
//	if err != nil {
//	    return err
//	}
//	document.Walk(doc.Root, func(n *document.BlockNode, depth int) bool {
//	    fmt.Println(strings.Repeat("  ", depth), n.Type)
//	    return true
//	})
package document
