package dto_test

import (
	"testing"

	"storefront-api/internal/dto"
)

func TestBuildPaginationMeta(t *testing.T) {
	cases := []struct {
		name    string
		page    int
		limit   int
		total   int64
		pages   int
		hasNext bool
		hasPrev bool
	}{
		{"first of many", 1, 20, 45, 3, true, false},
		{"middle page", 2, 20, 45, 3, true, true},
		{"last page", 3, 20, 45, 3, false, true},
		{"exact fit", 2, 10, 20, 2, false, true},
		{"empty result", 1, 20, 0, 0, false, false},
		{"single item", 1, 20, 1, 1, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := dto.BuildPaginationMeta(tc.page, tc.limit, tc.total)
			if p.TotalPages != tc.pages {
				t.Errorf("Expected totalPages %d, got %d", tc.pages, p.TotalPages)
			}
			if p.HasNextPage != tc.hasNext {
				t.Errorf("Expected hasNextPage %v, got %v", tc.hasNext, p.HasNextPage)
			}
			if p.HasPrevPage != tc.hasPrev {
				t.Errorf("Expected hasPrevPage %v, got %v", tc.hasPrev, p.HasPrevPage)
			}
			if p.Total != tc.total || p.Page != tc.page || p.Limit != tc.limit {
				t.Errorf("Echoed fields mismatch: %+v", p)
			}
		})
	}
}

func TestErr(t *testing.T) {
	resp := dto.Err(dto.CodeValidationError, "Insufficient stock", dto.FieldError{
		Field:   "quantity",
		Message: "Only 3 items available",
	})

	if resp.Success {
		t.Error("Error envelope must have success=false")
	}
	if resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("Unexpected code: %s", resp.Error.Code)
	}
	if len(resp.Error.Details) != 1 || resp.Error.Details[0].Field != "quantity" {
		t.Errorf("Unexpected details: %+v", resp.Error.Details)
	}
}
