package web

import (
	"net/http"
	"net/url"
)

// Form is the form payload of a POST.
type Form map[string]string

func (f Form) values() url.Values {
	v := make(url.Values, len(f))
	for k, s := range f {
		v.Set(k, s)
	}
	return v
}

type requestOptions struct {
	followRedirects bool
}

// RequestOption modifies a single client call.
type RequestOption func(*requestOptions)

// FollowRedirects makes the client chase 301/302 responses with GET requests
// until a non-redirect response is produced. Redirect loops are not detected.
func FollowRedirects() RequestOption {
	return func(o *requestOptions) {
		o.followRedirects = true
	}
}

// Client dispatches requests to an App in-process. All calls made through a
// client share its session.
type Client struct {
	app     *App
	session *Session
}

// Session returns the session attached to this client.
func (c *Client) Session() *Session {
	return c.session
}

// Get dispatches a GET with an empty form.
func (c *Client) Get(path string, opts ...RequestOption) *Response {
	return c.Do(http.MethodGet, path, nil, opts...)
}

// Post dispatches a POST with the given form.
func (c *Client) Post(path string, form Form, opts ...RequestOption) *Response {
	return c.Do(http.MethodPost, path, form, opts...)
}

// Do dispatches an arbitrary method.
func (c *Client) Do(method, path string, form Form, opts ...RequestOption) *Response {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}
	return c.execute(method, path, form, o.followRedirects)
}

func (c *Client) execute(method, path string, form Form, follow bool) *Response {
	logger := c.app.logger
	entry, params, ok := c.app.match(path, method)
	if !ok {
		logger.Debug("No route matched", "method", method, "path", path)
		return &Response{StatusCode: http.StatusNotFound, Headers: map[string]string{}}
	}

	ctx := &Context{
		App:     c.app,
		Request: &Request{Method: method, Path: path, Form: form.values()},
		Params:  params,
		Session: c.session,
	}
	result := entry.Handler(ctx)

	resp, isResp := result.(*Response)
	if !isResp || resp == nil {
		resp = NewResponse(result)
		if isResp {
			resp.Data = nil
		}
	}
	logger.Debug("Dispatched request",
		"method", method, "path", path, "endpoint", entry.Endpoint, "status", resp.StatusCode)

	if follow && resp.IsRedirect() {
		return c.execute(http.MethodGet, resp.Headers["Location"], nil, true)
	}
	return resp
}
