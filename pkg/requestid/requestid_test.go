package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/requestid"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	serve := func(header string) (string, string) {
		var seen string
		h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = requestid.FromContext(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(requestid.Header, header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return seen, rec.Header().Get(requestid.Header)
	}

	t.Run("generates an id", func(t *testing.T) {
		t.Parallel()

		seen, echoed := serve("")
		require.NotEmpty(t, seen)
		assert.Equal(t, seen, echoed)
	})

	t.Run("keeps a well-formed id", func(t *testing.T) {
		t.Parallel()

		seen, echoed := serve("req_123-abc")
		assert.Equal(t, "req_123-abc", seen)
		assert.Equal(t, "req_123-abc", echoed)
	})

	t.Run("replaces malformed ids", func(t *testing.T) {
		t.Parallel()

		for _, bad := range []string{"has space", "<script>", strings.Repeat("a", 129)} {
			seen, _ := serve(bad)
			assert.NotEqual(t, bad, seen)
			assert.NotEmpty(t, seen)
		}
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := requestid.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(requestid.WithContext(context.Background(), "abc"))
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())
}
