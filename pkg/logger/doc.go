// Package logger builds the structured *slog.Logger used across mailforge
// and defines the attribute helpers that keep key names consistent.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Parse(os.Getenv("APP_ENV")), "mailforge"),
//		logger.WithContextExtractors(environment.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "snapshot rendered",
//		logger.SnapshotID(snap.SnapshotID),
//		logger.SizeBytes(len(out.HTML)),
//	)
//
// Error, Errors, DocumentID, StableID and SnapshotID return an empty Attr for
// zero input, which slog drops, so callers need no nil checks.
package logger
