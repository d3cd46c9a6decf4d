// Package previewapi serves the render pipeline as a JSON HTTP API for the
// editor's live preview and for send workers.
//
//	svc := previewapi.NewService(renderer,
//		previewapi.WithLogger(log),
//		previewapi.WithEnvironment(env),
//	)
//	srv.Run(ctx, svc.Handle())
//
// Every response is an Envelope. Failures carry an ErrorDetail with a
// stable code; compile failures also return the partial output under data
// so the editor can show the assembled markup.
package previewapi
