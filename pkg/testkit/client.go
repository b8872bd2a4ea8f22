// Package testkit drives an http.Handler from tests and asserts on the JSON
// it answers with.
//
//	c := testkit.New(t, handler)
//	res := c.Post("/placeorder", map[string]any{"email": "a@b.com"}).AssertStatus(http.StatusOK)
//	id := res.Doc()["insertedId"].(string)
package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Client fires in-process requests at a handler.
type Client struct {
	t       *testing.T
	handler http.Handler
}

func New(t *testing.T, handler http.Handler) *Client {
	return &Client{t: t, handler: handler}
}

// Do sends one request. body may be nil, a string (sent verbatim) or any
// value, which is JSON-encoded.
func (c *Client) Do(method, target string, body interface{}) *Response {
	c.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(c.t, err, "testkit: encode request body")
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	return &Response{t: c.t, Recorder: rec, name: method + " " + target}
}

func (c *Client) Get(target string) *Response { return c.Do(http.MethodGet, target, nil) }

func (c *Client) Post(target string, body interface{}) *Response {
	return c.Do(http.MethodPost, target, body)
}

func (c *Client) Put(target string, body interface{}) *Response {
	return c.Do(http.MethodPut, target, body)
}

func (c *Client) Delete(target string) *Response { return c.Do(http.MethodDelete, target, nil) }

// Response is a recorded answer plus assertion helpers.
type Response struct {
	t        *testing.T
	Recorder *httptest.ResponseRecorder
	name     string
}

func (r *Response) Code() int { return r.Recorder.Code }

func (r *Response) Body() string { return r.Recorder.Body.String() }

// AssertStatus checks the response code and returns r for chaining.
func (r *Response) AssertStatus(code int) *Response {
	r.t.Helper()
	assert.Equal(r.t, code, r.Recorder.Code, "[%s] HTTP status code mismatch\nbody: %s", r.name, r.Body())
	return r
}

// Decode unmarshals the body into dest, failing the test if it is not JSON.
func (r *Response) Decode(dest interface{}) {
	r.t.Helper()
	require.NoError(r.t, json.Unmarshal(r.Recorder.Body.Bytes(), dest),
		"[%s] response is not valid JSON\nbody: %s", r.name, r.Body())
}

// Doc decodes a JSON object body.
func (r *Response) Doc() map[string]interface{} {
	r.t.Helper()
	var out map[string]interface{}
	r.Decode(&out)
	return out
}

// Docs decodes a JSON array-of-objects body.
func (r *Response) Docs() []map[string]interface{} {
	r.t.Helper()
	var out []map[string]interface{}
	r.Decode(&out)
	return out
}

// AssertJSON compares the body with expected after normalising both through
// JSON decoding, so key order and whitespace never matter.
func (r *Response) AssertJSON(expected string) *Response {
	r.t.Helper()
	assert.JSONEq(r.t, expected, r.Body(), "[%s] response body mismatch", r.name)
	return r
}
