// Package compiler turns MJML markup into responsive email HTML.
//
// The Compiler runs an MJML engine with lenient validation: validation
// findings are reported as warnings and compilation proceeds. Only an
// engine failure that yields no HTML is returned as an error. Successful
// results are cached in an in-memory LRU keyed by the SHA-256 of the
// markup, so repeated previews of an unchanged document are served
// without invoking the engine.
//
// Basic usage:
//
//	c := compiler.New(compiler.WithCacheSize(128))
//	res := c.ToHTML(ctx, markupString)
//	if res.Err != nil {
//		// handle
//	}
//
// WithSharedCache adds a second level, typically Redis, so that several
// processes compile each distinct markup once.
//
// CompileDocument and CompileElements run the markup assembler first and
// skip the HTML stage when the assembler reports errors.
package compiler
