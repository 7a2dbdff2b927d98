package domain

import (
	"encoding/json"
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Pagination is the "pagination" object returned next to "results" by list
// endpoints. Counts are optional; absent or null values stay undefined.
type Pagination struct {
	CurrentPage ldvalue.OptionalInt `json:"current_page"`
	TotalPages  ldvalue.OptionalInt `json:"total_pages"`
	TotalItems  ldvalue.OptionalInt `json:"total_items"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// NewPagination computes page metadata for a 1-based page of pageSize items
// out of totalItems.
func NewPagination(page, pageSize, totalItems int) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}

	return Pagination{
		CurrentPage: ldvalue.NewOptionalInt(page),
		TotalPages:  ldvalue.NewOptionalInt(totalPages),
		TotalItems:  ldvalue.NewOptionalInt(totalItems),
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// NewPaginationFromMap builds a Pagination from a decoded JSON object.
// Wrongly typed values and negative counts are rejected; extra keys such as
// page_size are ignored.
func NewPaginationFromMap(data map[string]any) (Pagination, error) {
	var p Pagination

	raw, err := json.Marshal(data)
	if err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidPagination, err)
	}

	if err := json.Unmarshal(raw, &p); err != nil {
		return Pagination{}, fmt.Errorf("%w: %v", ErrInvalidPagination, err)
	}

	if err := p.Validate(); err != nil {
		return Pagination{}, err
	}
	return p, nil
}

// Validate checks that every defined count is non-negative.
func (p Pagination) Validate() error {
	fields := []struct {
		name  string
		value ldvalue.OptionalInt
	}{
		{"current_page", p.CurrentPage},
		{"total_pages", p.TotalPages},
		{"total_items", p.TotalItems},
	}

	for _, f := range fields {
		if v, ok := f.value.Get(); ok && v < 0 {
			return fmt.Errorf("%w: %s is negative (%d)", ErrInvalidPagination, f.name, v)
		}
	}
	return nil
}
