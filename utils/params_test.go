package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParseCatalogQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/farmerproducts?page=2&limit=12&category=Fruits&city=LaHore&sortBy=priceAsc&searchTerm=mango", nil)
	q := ParseCatalogQuery(r, "category")

	if q.Page != 2 || q.Limit != 12 {
		t.Errorf("unexpected paging: %+v", q)
	}
	if q.Category != "Fruits" {
		t.Errorf("category = %q", q.Category)
	}
	if q.City != "lahore" {
		t.Errorf("city should be lowercased, got %q", q.City)
	}
	if q.SortBy != "priceAsc" || q.SearchTerm != "mango" {
		t.Errorf("unexpected query: %+v", q)
	}
}

func TestParseCatalogQueryDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/vehicles", nil)
	q := ParseCatalogQuery(r, "vehicleType")

	if q.Page != 1 {
		t.Errorf("default page = %d, want 1", q.Page)
	}
	if q.Limit != 10 {
		t.Errorf("default limit = %d, want 10", q.Limit)
	}
}

func TestParseCatalogQueryCapsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/farmerproducts?limit=500", nil)
	q := ParseCatalogQuery(r, "category")
	if q.Limit != 50 {
		t.Errorf("limit = %d, want 50", q.Limit)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{100, 12, 9},
	}
	for _, c := range cases {
		if got := TotalPages(c.total, c.limit); got != c.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", c.total, c.limit, got, c.want)
		}
	}
}

func TestNormalizeCity(t *testing.T) {
	if got := NormalizeCity("  LaHore "); got != "lahore" {
		t.Errorf("NormalizeCity = %q", got)
	}
}
