package validators

import (
	"net/http"
	"strconv"

	pkgerrors "github.com/olivercruz/dishpatch-backend/pkg/errors"
	"github.com/olivercruz/dishpatch-backend/pkg/pagination"
)

// Pagination parses the limit and cursor query parameters.
func Pagination(r *http.Request) (pagination.Params, error) {
	params := pagination.Params{Cursor: r.URL.Query().Get("cursor")}

	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return params, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return params, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid limit")
	}
	if limit < 0 {
		return params, pkgerrors.New(pkgerrors.CodeValidation, "limit must not be negative")
	}
	params.Limit = limit
	return params, nil
}
