// Package markup compiles email documents into MJML, the section/column
// constrained intermediate markup that is later compiled to HTML.
//
// Two front ends share everything below markup generation:
//
//   - Compile walks the editor's block tree (document.Document).
//   - CompileElements walks a flat element document (document.ElementDocument).
//
// # Attribute conversion
//
// Each property domain has its own converter (attrs_layout.go, attrs_link.go,
// attrs_size.go, attrs_style.go, attrs_typography.go). Converters are pure
// functions of block type and props and run in a fixed order; ConvertAttrs
// exposes the combined result. Unset or non-scalar values are dropped
// silently.
//
// # Structural wrapping
//
// Content must live inside a section and a column. Leaf blocks placed directly
// under the root are wrapped in a zero-padding section/column pair; Block nodes
// group consecutive leaves into their own sections while passing nested
// section-level blocks through; Columns generate equal-width columns for
// children that are not already columns.
//
// # Diagnostics
//
// Warnings and errors are returned as values from every recursive call and
// merged upward. An unrecognized block type is an error that compiles to an
// empty string at that node only; structural fallbacks are warnings.
//
//	res := markup.Compile(doc, markup.WithCanvasWidth(600))
//	if err := res.Err(); err != nil {
//	    log.Println(res.Markup) // partial output stays available
//	}
package markup
