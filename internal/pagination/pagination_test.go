package pagination

import "testing"

func TestNewParams_AppliesDefaults(t *testing.T) {
	p := NewParams(0, 0)

	if p.Page != DefaultPage {
		t.Errorf("Expected page %d, got %d", DefaultPage, p.Page)
	}
	if p.Limit != DefaultLimit {
		t.Errorf("Expected limit %d, got %d", DefaultLimit, p.Limit)
	}
}

func TestNewParams_CapsLimit(t *testing.T) {
	p := NewParams(1, 1000)

	if p.Limit != MaxLimit {
		t.Errorf("Expected limit capped at %d, got %d", MaxLimit, p.Limit)
	}
}

func TestOffset(t *testing.T) {
	testCases := []struct {
		page, limit, expected int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{3, 10, 20},
	}

	for _, tc := range testCases {
		p := Params{Page: tc.page, Limit: tc.limit}
		if got := p.Offset(); got != tc.expected {
			t.Errorf("Offset(page=%d, limit=%d) = %d, expected %d", tc.page, tc.limit, got, tc.expected)
		}
	}
}

func TestCalculateMeta(t *testing.T) {
	meta := CalculateMeta(Params{Page: 2, Limit: 10}, 25)

	if meta.TotalPages != 3 {
		t.Errorf("Expected 3 pages, got %d", meta.TotalPages)
	}
	if meta.TotalRecords != 25 {
		t.Errorf("Expected 25 records, got %d", meta.TotalRecords)
	}
	if !meta.HasNext {
		t.Error("Expected HasNext on page 2 of 3")
	}
	if !meta.HasPrevious {
		t.Error("Expected HasPrevious on page 2")
	}
}

func TestCalculateMeta_Empty(t *testing.T) {
	meta := CalculateMeta(Params{Page: 1, Limit: 10}, 0)

	if meta.TotalPages != 1 {
		t.Errorf("Expected 1 page for empty result, got %d", meta.TotalPages)
	}
	if meta.HasNext || meta.HasPrevious {
		t.Error("Expected no next/previous on empty result")
	}
}
