package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pixelfeed/backend/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntParam(t *testing.T) {
	e := echo.New()

	newCtx := func(value string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(value)
		return c
	}

	t.Run("valid", func(t *testing.T) {
		id, err := ParseIntParam(newCtx("42"), "id")
		require.NoError(t, err)
		assert.Equal(t, 42, id)
	})

	t.Run("non-numeric", func(t *testing.T) {
		_, err := ParseIntParam(newCtx("abc"), "id")
		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Contains(t, httpErr.Message, "id")
	})

	t.Run("missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		_, err := ParseIntParam(c, "id")
		require.Error(t, err)
	})
}
