package repository

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pixelfeed/backend/internal/errs"
)

// BuildPartialUpdate turns a sparse field map into a parameterized SET
// clause and the aligned value list for an UPDATE statement.
//
// fields maps logical field names to new values; columnOverrides maps
// logical names to physical column names (names without an override
// pass through unchanged). Field names are processed in sorted order
// so the generated SQL is deterministic; placeholders are numbered
// from $1 and the returned values align with them positionally.
//
//	{"bio": "hi", "isAdmin": true} with {"isAdmin": "is_admin"}
//	=> `"bio"=$1, "is_admin"=$2`, ["hi", true]
//
// An empty field map is a caller error, not a no-op: it returns a 400
// validation error.
func BuildPartialUpdate(fields map[string]any, columnOverrides map[string]string) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, errs.NewBadRequestError("No data to update", true, nil, nil, nil)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	assignments := make([]string, 0, len(names))
	values := make([]any, 0, len(names))
	for i, name := range names {
		column := name
		if override, ok := columnOverrides[name]; ok {
			column = override
		}
		assignments = append(assignments, fmt.Sprintf(`"%s"=$%d`, column, i+1))
		values = append(values, fields[name])
	}

	return strings.Join(assignments, ", "), values, nil
}
