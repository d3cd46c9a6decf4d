// Package async runs independent calls concurrently and collects their
// results through typed futures.
//
// Map bounds the number of calls in flight with a semaphore, which is how
// the render pipeline fans out one render per recipient:
//
//	futures := async.Map(ctx, recipients, 8, renderOne)
//	for i, o := range async.WaitAll(futures...) {
//		// o.Value, o.Err belong to recipients[i]
//	}
//
// Cancellation is cooperative: calls waiting for a slot give up when ctx is
// done, while calls already running observe ctx themselves.
package async
