package web

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Response is the outcome of a dispatched request.
type Response struct {
	Data       any
	StatusCode int
	Headers    map[string]string
}

// NewResponse wraps data with status 200 and no headers.
func NewResponse(data any) *Response {
	return &Response{Data: data, StatusCode: http.StatusOK, Headers: map[string]string{}}
}

// Redirect returns a 302 pointing at location.
func Redirect(location string) *Response {
	return &Response{
		StatusCode: http.StatusFound,
		Headers:    map[string]string{"Location": location},
	}
}

// Abort returns an empty response with the given status.
func Abort(status int) *Response {
	return &Response{StatusCode: status, Headers: map[string]string{}}
}

// IsRedirect reports whether the response is a 301 or 302 carrying a Location.
func (r *Response) IsRedirect() bool {
	if r.StatusCode != http.StatusMovedPermanently && r.StatusCode != http.StatusFound {
		return false
	}
	_, ok := r.Headers["Location"]
	return ok
}

// Text renders the payload as a string.
func (r *Response) Text() string {
	switch v := r.Data.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// Render produces a placeholder page naming the template and its context.
// App globals are merged under data, so explicit data wins.
func Render(c *Context, name string, data map[string]any) string {
	merged := make(map[string]any, len(data))
	if c != nil && c.App != nil {
		for k, fn := range c.App.Globals {
			merged[k] = fn(c)
		}
	}
	for k, v := range data {
		merged[k] = v
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, merged[k])
	}
	return fmt.Sprintf("Rendered %s with {%s}", name, strings.Join(parts, ", "))
}
