// Package bind decodes and validates HTTP request bodies.
//
// Open documents are decoded into bson.M with Document; typed projections
// are decoded with JSON and checked against their `validate` tags using
// go-playground/validator.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/hasan75/tourism-htt-server/config"
)

// ErrBody marks a body that could not be decoded.
var ErrBody = errors.New("bind: invalid request body")

var (
	validateOnce sync.Once
	v            *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		// Report errors under the JSON field name callers actually sent.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return v
}

func decode(r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, config.MaxBodyBytes())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return fmt.Errorf("%w: body too large (max %d bytes)", ErrBody, maxErr.Limit)
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: empty body", ErrBody)
		default:
			return fmt.Errorf("%w: %v", ErrBody, err)
		}
	}
	return nil
}

// Document decodes a JSON object body into an open document.
func Document(r *http.Request) (bson.M, error) {
	var doc map[string]interface{}
	if err := decode(r, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrBody)
	}
	return bson.M(doc), nil
}

// JSON decodes the body into dest and runs validation. It returns a non-nil
// error map when validation fails and a non-nil error when decoding fails.
func JSON(r *http.Request, dest interface{}) (map[string]string, error) {
	if err := decode(r, dest); err != nil {
		return nil, err
	}
	return Struct(dest), nil
}

// Struct validates an already-populated struct. A nil map means valid.
func Struct(s interface{}) map[string]string {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed the %q rule", fe.Field(), fe.Tag())
	}
}
