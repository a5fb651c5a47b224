package cart

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"agromandi/db"
	"agromandi/models"
	"agromandi/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

func receiptSecret() []byte {
	if s := os.Getenv("RECEIPT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("agromandi_receipt_secret")
}

// ReceiptQRPayload returns orderId|buyerId|signature for offline verification
// of a printed receipt.
func ReceiptQRPayload(orderID, buyerID string) string {
	data := fmt.Sprintf("%s|%s", orderID, buyerID)
	h := hmac.New(sha256.New, receiptSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// BuildReceiptPDF renders the order confirmation document.
func BuildReceiptPDF(order models.Order) ([]byte, error) {
	qrPNG, err := qrcode.Encode(ReceiptQRPayload(order.OrderID, order.BuyerID), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Confirmation")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order ID: %s", order.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Placed: %s", order.CreatedAt.Format(time.RFC1123)))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(80, 8, "Item")
	pdf.Cell(25, 8, "Qty")
	pdf.Cell(35, 8, "Unit Price")
	pdf.Cell(35, 8, "Line Total")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	for _, it := range order.Items {
		name := it.Name
		if it.Variety != "" {
			name = fmt.Sprintf("%s (%s)", name, it.Variety)
		}
		pdf.Cell(80, 8, name)
		pdf.Cell(25, 8, fmt.Sprintf("%d %s", it.Quantity, it.Unit))
		pdf.Cell(35, 8, fmt.Sprintf("%.2f", it.PriceAtOrderTime))
		pdf.Cell(35, 8, fmt.Sprintf("%.2f", it.PriceAtOrderTime*float64(it.Quantity)))
		pdf.Ln(8)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f", order.TotalAmount))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Deliver to: %s, %s, %s", order.Address.Street, order.Address.City, order.Address.Province))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Contact: %s", order.ContactInfo))
	if order.DeliveryInstructions != "" {
		pdf.Ln(8)
		pdf.Cell(0, 8, fmt.Sprintf("Instructions: %s", order.DeliveryInstructions))
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 20, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// OrderReceipt streams the confirmation PDF for an order to its buyer, its
// farmer, or an admin.
func OrderReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	role := utils.GetRoleFromRequest(r)

	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"orderId": ps.ByName("orderId")}).Decode(&order)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	if userID != order.BuyerID && userID != order.FarmerID && role != models.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	pdfBytes, err := BuildReceiptPDF(order)
	if err != nil {
		http.Error(w, "Failed to generate receipt", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=order-"+order.OrderID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
