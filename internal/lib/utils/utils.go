// Package utils contains small helper functions used across the project.
//
// These are generic helpers that don't belong to a specific domain.
package utils

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pixelfeed/backend/internal/errs"
)

// ParseIntParam reads a path parameter and converts it to an int. A
// missing or non-numeric value comes back as a 400-level error naming
// the parameter.
func ParseIntParam(c echo.Context, name string) (int, error) {
	raw := c.Param(name)
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewBadRequestError(
			fmt.Sprintf("Invalid %s: %s", name, raw), true, nil, nil, nil)
	}
	return value, nil
}
