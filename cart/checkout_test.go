package cart

import (
	"testing"

	"agromandi/models"
)

func TestValidateCheckout(t *testing.T) {
	valid := CheckoutPayload{
		Address:     models.Address{Street: "12 Rd", City: "Lahore", Province: "Punjab"},
		ContactInfo: "0300-1234567",
	}
	if errs := ValidateCheckout(valid); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	empty := CheckoutPayload{}
	errs := ValidateCheckout(empty)
	for _, field := range []string{"street", "city", "province", "contactInfo"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected error for field %s", field)
		}
	}

	partial := valid
	partial.Address.Province = ""
	errs = ValidateCheckout(partial)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if _, ok := errs["province"]; !ok {
		t.Error("expected province error")
	}
}

func TestBuildOrderItemsFreezesPrices(t *testing.T) {
	cartItems := []models.CartItem{
		{ProductID: "p1", ProductName: "Tomatoes", Unit: "kg", Price: 100, Quantity: 3, SelectedVariety: "Red"},
		{ProductID: "p2", ProductName: "Wheat", Unit: "maund", Price: 2500, Quantity: 1},
	}

	items := BuildOrderItems(cartItems)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.PriceAtOrderTime != 100 || first.Quantity != 3 || first.Variety != "Red" {
		t.Errorf("unexpected snapshot: %+v", first)
	}

	// mutating the cart line afterwards must not affect the snapshot
	cartItems[0].Price = 999
	if items[0].PriceAtOrderTime != 100 {
		t.Error("snapshot price changed after cart mutation")
	}
}

func TestComputeTotal(t *testing.T) {
	items := []models.OrderItem{
		{PriceAtOrderTime: 100, Quantity: 3},
		{PriceAtOrderTime: 2500, Quantity: 1},
	}
	if got := ComputeTotal(items); got != 2800 {
		t.Errorf("ComputeTotal = %v, want 2800", got)
	}

	if got := ComputeTotal(nil); got != 0 {
		t.Errorf("ComputeTotal(nil) = %v, want 0", got)
	}

	// rounding to 2 decimals
	fractional := []models.OrderItem{
		{PriceAtOrderTime: 0.1, Quantity: 3},
	}
	if got := ComputeTotal(fractional); got != 0.3 {
		t.Errorf("ComputeTotal = %v, want 0.3", got)
	}
}

func TestTotalMismatch(t *testing.T) {
	cases := []struct {
		client, server float64
		want           bool
	}{
		{2800, 2800, false},
		// no total submitted: server value stands
		{0, 2800, false},
		{-1, 2800, false},
		// below the one-cent threshold
		{2800.0099, 2800, false},
		{2799.9901, 2800, false},
		// at the threshold exactly
		{0.02, 0.01, true},
		// past it, either direction
		{2800.02, 2800, true},
		{2799.98, 2800, true},
		{2700, 2800, true},
		{2900, 2800, true},
	}

	for _, c := range cases {
		if got := TotalMismatch(c.client, c.server); got != c.want {
			t.Errorf("TotalMismatch(%v, %v) = %v, want %v", c.client, c.server, got, c.want)
		}
	}
}
