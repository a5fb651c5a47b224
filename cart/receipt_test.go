package cart

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"agromandi/models"
)

func TestReceiptQRPayload(t *testing.T) {
	payload := ReceiptQRPayload("ORD123", "u456")
	parts := strings.Split(payload, "|")
	if len(parts) != 3 {
		t.Fatalf("expected orderId|buyerId|signature, got %q", payload)
	}
	if parts[0] != "ORD123" || parts[1] != "u456" {
		t.Errorf("unexpected payload prefix: %q", payload)
	}
	if parts[2] == "" {
		t.Error("missing signature")
	}

	// signature must depend on the order id
	other := ReceiptQRPayload("ORD124", "u456")
	if strings.Split(other, "|")[2] == parts[2] {
		t.Error("signature did not change with order id")
	}
}

func TestBuildReceiptPDF(t *testing.T) {
	order := models.Order{
		OrderID:  "ORD1234567890",
		BuyerID:  "u1",
		FarmerID: "u2",
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Tomatoes", Unit: "kg", PriceAtOrderTime: 100, Quantity: 3, Variety: "Red"},
		},
		Address:     models.Address{Street: "12 Rd", City: "Lahore", Province: "Punjab"},
		ContactInfo: "0300-1234567",
		TotalAmount: 300,
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
	}

	pdfBytes, err := BuildReceiptPDF(order)
	if err != nil {
		t.Fatalf("BuildReceiptPDF error: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatal("empty PDF output")
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Error("output does not look like a PDF")
	}
}
