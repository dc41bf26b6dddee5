package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"techpro-backoffice/models"
)

// GeneratePaymentReceipt writes a PDF receipt for a completed payment and
// returns the file path. Callers are responsible for cleanup after emailing.
func GeneratePaymentReceipt(payment models.Payment, studentName string) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Payment Receipt")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Receipt for %s", studentName))
	pdf.Ln(12)
	pdf.Cell(40, 10, fmt.Sprintf("Order ID: %s", payment.OrderID))
	pdf.Ln(12)
	pdf.Cell(40, 10, fmt.Sprintf("Payment ID: %s", payment.PaymentID))
	pdf.Ln(12)
	pdf.Cell(40, 10, fmt.Sprintf("Amount: %.2f %s", payment.Amount, payment.Currency))
	pdf.Ln(12)
	pdf.Cell(40, 10, fmt.Sprintf("Status: %s", payment.Status))
	pdf.Ln(12)
	pdf.Cell(40, 10, "Thank you for your payment.")
	pdf.Ln(12)
	pdf.Cell(40, 10, "Tech-Pro Admissions")

	path := filepath.Join(os.TempDir(), fmt.Sprintf("receipt_%s.pdf", payment.OrderID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("error generating receipt PDF: %w", err)
	}

	return path, nil
}
