package backend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

// errorBody is the backend's error envelope.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// parseDetail extracts "detail" from an error body. A string detail is
// returned verbatim; any other JSON value is returned compacted. A missing
// or unparseable body yields "".
func parseDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return s
	}
	if string(eb.Detail) == "null" {
		return ""
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, eb.Detail); err != nil {
		return ""
	}
	return buf.String()
}

// apiError builds the error for a non-2xx response.
func apiError(status int, body []byte) *domain.APIError {
	return &domain.APIError{StatusCode: status, Detail: parseDetail(body)}
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
