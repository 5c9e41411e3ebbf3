package composables

import (
	"net/http"
	"strconv"

	"github.com/ce1sus/ce1sus-console/pkg/configuration"
)

type PaginationParams struct {
	Limit  int
	Offset int
	// Page is 1-based.
	Page int
}

// UsePaginated reads ?page= and ?limit= falling back to the configured page
// size. Out of range values are clamped.
func UsePaginated(r *http.Request) PaginationParams {
	conf := configuration.Use()
	return usePaginated(r, conf.PageSize, conf.MaxPageSize)
}

// UsePaginatedWith is UsePaginated with explicit limits.
func UsePaginatedWith(r *http.Request, defaultLimit, maxLimit int) PaginationParams {
	return usePaginated(r, defaultLimit, maxLimit)
}

func usePaginated(r *http.Request, defaultLimit, maxLimit int) PaginationParams {
	page, err := strconv.Atoi(GetLastQueryParam(r, "page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(GetLastQueryParam(r, "limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return PaginationParams{
		Limit:  limit,
		Offset: (page - 1) * limit,
		Page:   page,
	}
}
