// Package ctx provides the request context every gateway handler receives.
//
// Handlers take a single *Context instead of (w, r):
//
//	func (c *OrderController) Show(cx *ctx.Context) {
//	    id, err := cx.Param("id")
//	    if err != nil {
//	        cx.Fail(err)
//	        return
//	    }
//	    order, err := c.orders.Get(cx.Context(), id)
//	    if err != nil {
//	        cx.Fail(err)
//	        return
//	    }
//	    cx.OK(order)
//	}
//
//	r.Get("/orders/{id}", "orders.show", ctx.Wrap(orders.Show))
package ctx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/hasan75/tourism-htt-server/pkg/bind"
	"github.com/hasan75/tourism-htt-server/pkg/docstore"
	"github.com/hasan75/tourism-htt-server/pkg/logger"
	"github.com/hasan75/tourism-htt-server/pkg/payment"
	"github.com/hasan75/tourism-htt-server/pkg/response"
)

// ErrQuery marks a malformed query-string value.
var ErrQuery = errors.New("invalid query parameter")

type HandlerFunc func(c *Context)

// Wrap adapts a HandlerFunc to http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(&Context{W: w, R: r})
	}
}

// Context wraps one request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int
}

// Param returns a decoded path parameter ("/orders/{id}" → c.Param("id")).
// chi matches on the raw path when the request carries one, so the captured
// segment is still percent-encoded in that case.
func (c *Context) Param(key string) (string, error) {
	raw := chi.URLParam(c.R, key)
	if c.R.URL.RawPath == "" {
		return raw, nil
	}
	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s is not a valid path segment: %q", ErrQuery, key, raw)
	}
	return v, nil
}

// Query returns a query-string value, "" when absent.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// HasQuery reports whether key appears in the query string at all.
func (c *Context) HasQuery(key string) bool {
	return c.R.URL.Query().Has(key)
}

// QueryInt64 parses a non-negative integer query value.
func (c *Context) QueryInt64(key string) (int64, error) {
	raw := c.Query(key)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer, got %q", ErrQuery, key, raw)
	}
	return n, nil
}

func (c *Context) Context() context.Context { return c.R.Context() }

// Document decodes the body as an open JSON document.
func (c *Context) Document() (bson.M, error) {
	return bind.Document(c.R)
}

// BindJSON decodes and validates the body into dest. On failure it writes
// the 400/422 response itself and returns false.
//
//	var in models.PromoteAdmin
//	if !c.BindJSON(&in) {
//	    return
//	}
func (c *Context) BindJSON(dest interface{}) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Fail(err)
		return false
	}
	if len(errs) > 0 {
		c.status = http.StatusUnprocessableEntity
		response.ValidationError(c.W, errs)
		return false
	}
	return true
}

// JSON writes v raw with the given status.
func (c *Context) JSON(code int, v interface{}) {
	c.status = code
	response.JSON(c.W, code, v)
}

// OK writes v raw with 200.
func (c *Context) OK(v interface{}) {
	c.JSON(http.StatusOK, v)
}

// String writes a plain-text body.
func (c *Context) String(code int, body string) {
	c.status = code
	response.Text(c.W, code, body)
}

// Error sends an error envelope.
func (c *Context) Error(code int, message string) {
	c.status = code
	response.Error(c.W, code, message)
}

// Fail logs err and answers with the status it maps to. Store and unknown
// failures never leak their message to the caller.
func (c *Context) Fail(err error) {
	code, msg := classify(err)

	log := logger.WithCtx(c.Context())
	if code >= http.StatusInternalServerError {
		log.Error("request failed", "method", c.R.Method, "path", c.R.URL.Path, "status", code, "error", err)
	} else {
		log.Warn("request rejected", "method", c.R.Method, "path", c.R.URL.Path, "status", code, "error", err)
	}

	c.Error(code, msg)
}

// WrittenStatus returns the status written so far, 0 when none.
func (c *Context) WrittenStatus() int { return c.status }

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, docstore.ErrInvalidID),
		errors.Is(err, bind.ErrBody),
		errors.Is(err, ErrQuery):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, payment.ErrInvalidAmount):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, payment.ErrProcessor):
		return http.StatusBadGateway, "Payment processor unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Upstream timed out"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}
