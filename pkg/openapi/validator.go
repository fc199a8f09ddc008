package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

var (
	// ErrRouteNotFound is returned for requests outside the document.
	ErrRouteNotFound = errors.New("openapi: route not found")
	// ErrMethodNotAllowed is returned when the path exists but not the method.
	ErrMethodNotAllowed = errors.New("openapi: method not allowed")
)

// RequestError reports a request that does not match its operation.
type RequestError struct {
	Operation string
	Err       error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("openapi: invalid %s request: %v", e.Operation, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Validator checks requests against a loaded document.
type Validator struct {
	doc    *openapi3.T
	router routers.Router
}

// NewValidator builds a validator for the embedded document.
func NewValidator(ctx context.Context) (*Validator, error) {
	return NewValidatorFromData(ctx, rawDocument)
}

// NewValidatorFromData builds a validator for raw.
func NewValidatorFromData(ctx context.Context, raw []byte) (*Validator, error) {
	doc, err := Load(ctx, raw)
	if err != nil {
		return nil, err
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("openapi: build router: %w", err)
	}
	return &Validator{doc: doc, router: router}, nil
}

// Document returns the parsed document.
func (v *Validator) Document() *openapi3.T {
	return v.doc
}

// Operations lists the validator's operations.
func (v *Validator) Operations() []Operation {
	return Operations(v.doc)
}

// ValidateRequest checks path parameters and the JSON body of r. The body is
// left readable for the handler.
func (v *Validator) ValidateRequest(r *http.Request) error {
	route, params, err := v.router.FindRoute(r)
	if err != nil {
		if isMethodNotAllowed(err) {
			return fmt.Errorf("%w: %s %s", ErrMethodNotAllowed, r.Method, r.URL.Path)
		}
		return fmt.Errorf("%w: %s %s", ErrRouteNotFound, r.Method, r.URL.Path)
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: params,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}
	if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
		name := route.Method + " " + route.Path
		if route.Operation != nil && route.Operation.OperationID != "" {
			name = route.Operation.OperationID
		}
		return &RequestError{Operation: name, Err: err}
	}
	return nil
}

func isMethodNotAllowed(err error) bool {
	if errors.Is(err, routers.ErrMethodNotAllowed) {
		return true
	}
	var routeErr *routers.RouteError
	return errors.As(err, &routeErr) && routeErr.Reason == routers.ErrMethodNotAllowed.Error()
}
