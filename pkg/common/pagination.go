package common

import (
	"net/http"
	"strconv"
)

// PaginationParams represents limit/offset paging extracted from a request.
type PaginationParams struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// DefaultPaginationParams returns default pagination parameters
func DefaultPaginationParams() PaginationParams {
	return PaginationParams{Limit: 20, Offset: 0}
}

// ExtractPaginationParams extracts pagination parameters from request
func ExtractPaginationParams(r *http.Request) PaginationParams {
	params := DefaultPaginationParams()

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			if l > 100 {
				l = 100 // Max page size
			}
			params.Limit = l
		}
	}

	if offset := r.URL.Query().Get("offset"); offset != "" {
		if o, err := strconv.Atoi(offset); err == nil && o >= 0 {
			params.Offset = o
		}
	}

	return params
}

// BuildPaginationMeta builds pagination metadata for a returned page.
func BuildPaginationMeta(params PaginationParams, count int) *PaginationInfo {
	return &PaginationInfo{
		Limit:   params.Limit,
		Offset:  params.Offset,
		Count:   count,
		HasMore: count == params.Limit,
	}
}
