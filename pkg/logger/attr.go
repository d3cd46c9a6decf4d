package logger

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/dmitrymomot/mailforge/pkg/sanitizer"
)

// Component names the subsystem emitting the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Error records err under "error". A nil error yields an empty Attr that
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors", indexed by position.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Messages records diagnostic strings under key, skipping empty lists.
func Messages(key string, msgs []string) slog.Attr {
	if len(msgs) == 0 {
		return slog.Attr{}
	}
	return slog.Any(key, msgs)
}

// DocumentID records the editor document identifier.
func DocumentID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("document_id", id)
}

// StableID records the template identifier shared by all snapshots.
func StableID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("stable_id", id)
}

// SnapshotID records the identifier of one published snapshot.
func SnapshotID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("snapshot_id", id)
}

// RequestID records the request identifier under "request_id".
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Warnings records a warning count.
func Warnings(n int) slog.Attr {
	return slog.Int("warnings", n)
}

// SizeBytes records an output size in bytes.
func SizeBytes(n int) slog.Attr {
	return slog.Int("size_bytes", n)
}

// Duration records an elapsed time in milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64("duration_ms", float64(d.Microseconds())/1000)
}

// Recipient records a delivery address with the local part masked.
func Recipient(addr string) slog.Attr {
	return slog.String("recipient", sanitizer.MaskEmail(addr))
}
