package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pixelfeed/backend/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validate = validator.New()

type signupPayload struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
}

func (p *signupPayload) Validate() error {
	return validate.Struct(p)
}

func newJSONContext(t *testing.T, body string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestBindAndValidateSuccess(t *testing.T) {
	c := newJSONContext(t, `{"username":"alice","email":"alice@example.com"}`)

	var payload signupPayload
	require.NoError(t, BindAndValidate(c, &payload))
	assert.Equal(t, "alice", payload.Username)
	assert.Equal(t, "alice@example.com", payload.Email)
}

func TestBindAndValidateFieldErrors(t *testing.T) {
	c := newJSONContext(t, `{"username":"al","email":"not-an-email"}`)

	var payload signupPayload
	err := BindAndValidate(c, &payload)
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	require.Len(t, httpErr.Errors, 2)

	fields := map[string]string{}
	for _, fe := range httpErr.Errors {
		fields[fe.Field] = fe.Error
	}
	assert.Equal(t, "must be at least 3 characters", fields["username"])
	assert.Equal(t, "must be a valid email address", fields["email"])
}

func TestBindAndValidateMissingRequired(t *testing.T) {
	c := newJSONContext(t, `{}`)

	var payload signupPayload
	err := BindAndValidate(c, &payload)
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Len(t, httpErr.Errors, 2)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)
}

func TestBindAndValidateMalformedJSON(t *testing.T) {
	c := newJSONContext(t, `{"username":`)

	var payload signupPayload
	err := BindAndValidate(c, &payload)
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

type customPayload struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (p *customPayload) Validate() error {
	if p.End < p.Start {
		return CustomValidationErrors{
			{Field: "end", Message: "must not be before start"},
		}
	}
	return nil
}

func TestBindAndValidateCustomErrors(t *testing.T) {
	c := newJSONContext(t, `{"start":5,"end":2}`)

	var payload customPayload
	err := BindAndValidate(c, &payload)
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "end", httpErr.Errors[0].Field)
	assert.Equal(t, "must not be before start", httpErr.Errors[0].Error)
}
