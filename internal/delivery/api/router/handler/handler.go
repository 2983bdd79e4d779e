// Package handler binds HTTP requests to the use cases.
package handler

import (
	"strconv"

	deliverycontext "estate/internal/delivery/context"
	"estate/internal/domain/access"
	domainerrors "estate/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// bindBody decodes the JSON body into req and validates it.
func bindBody(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return domainerrors.NewFieldError("body", "must be a valid JSON object")
	}

	return c.Validate(req)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.NewFieldError("id", "must be a valid UUID")
	}

	return id, nil
}

func actor(c echo.Context) *access.Principal {
	return deliverycontext.GetPrincipal(c)
}

// queryParams collects typed, optional query parameters and the errors found while parsing them.
type queryParams struct {
	c      echo.Context
	fields []domainerrors.FieldError
}

func newQueryParams(c echo.Context) *queryParams {
	return &queryParams{c: c}
}

func (q *queryParams) fail(name, message string) {
	q.fields = append(q.fields, domainerrors.FieldError{Field: name, Message: message})
}

func (q *queryParams) String(name string) *string {
	v := q.c.QueryParam(name)
	if v == "" {
		return nil
	}

	return &v
}

func (q *queryParams) Float(name string) *float64 {
	v := q.c.QueryParam(name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		q.fail(name, "must be a number")

		return nil
	}

	return &f
}

func (q *queryParams) Int(name string) *int {
	v := q.c.QueryParam(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.fail(name, "must be an integer")

		return nil
	}

	return &n
}

func (q *queryParams) Bool(name string) *bool {
	v := q.c.QueryParam(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.fail(name, "must be true or false")

		return nil
	}

	return &b
}

func (q *queryParams) UUID(name string) *uuid.UUID {
	v := q.c.QueryParam(name)
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		q.fail(name, "must be a valid UUID")

		return nil
	}

	return &id
}

func (q *queryParams) err() error {
	if len(q.fields) == 0 {
		return nil
	}

	return domainerrors.NewValidationError(q.fields...)
}
