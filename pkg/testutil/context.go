package testutil

import (
	"net/http"

	"civreg/pkg/requestcontext"
)

// WithClientIP sets the requester IP as the metadata middleware would.
func WithClientIP(req *http.Request, ip string) *http.Request {
	return req.WithContext(requestcontext.WithClientMetadata(req.Context(), ip, "testutil"))
}
