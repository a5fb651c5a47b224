package cart

import (
	"testing"

	"agromandi/models"
)

func TestClampQuantity(t *testing.T) {
	cases := []struct {
		quantity, max, want int
	}{
		{3, 5, 3},
		{0, 5, 1},
		{-2, 5, 1},
		{6, 5, 5},
		{1, 5, 1},
		{5, 5, 5},
		// no maximum configured: default applies
		{4, 0, 4},
		{25, 0, models.DefaultMaxOrderQty},
	}

	for _, c := range cases {
		if got := ClampQuantity(c.quantity, c.max); got != c.want {
			t.Errorf("ClampQuantity(%d, %d) = %d, want %d", c.quantity, c.max, got, c.want)
		}
	}
}

func TestFarmerConflict(t *testing.T) {
	if FarmerConflict("f1", "f1") {
		t.Error("same farmer must not conflict")
	}
	if !FarmerConflict("f1", "f2") {
		t.Error("second farmer must conflict")
	}
	// empty cart: any farmer is fine
	if FarmerConflict("", "f2") {
		t.Error("empty cart must not conflict")
	}
}

func TestVarietyOffered(t *testing.T) {
	varieties := []string{"Red", "Golden"}
	if !varietyOffered(varieties, "Red") {
		t.Error("expected Red to be offered")
	}
	if varietyOffered(varieties, "Green") {
		t.Error("expected Green not to be offered")
	}
	if varietyOffered(nil, "Red") {
		t.Error("expected no variety on empty list")
	}
}
