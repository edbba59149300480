package receipt

import (
	"fmt"
	"strings"

	"fayclick/internal/domain"
)

// Build composes the read-only receipt from an invoice and its
// encashment. displaySeconds feeds the client's auto-dismiss countdown.
func Build(inv *domain.Invoice, enc *domain.Encashment, structureName string, displaySeconds int) *domain.Receipt {
	lines := make([]domain.ReceiptLine, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, domain.ReceiptLine{
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		})
	}
	return &domain.Receipt{
		ReceiptNumber:  enc.ReceiptNumber,
		InvoiceNumber:  inv.Number,
		StructureName:  structureName,
		Method:         enc.Method,
		MethodLabel:    enc.Method.Label(),
		Lines:          lines,
		Subtotal:       inv.Subtotal,
		Discount:       inv.Discount,
		Total:          inv.Total,
		CashReceived:   enc.CashReceived,
		ChangeDue:      enc.ChangeDue,
		IssuedAt:       enc.CreatedAt,
		DisplaySeconds: displaySeconds,
	}
}

const ticketWidth = 32

// FormatTicket renders the condensed fixed-width layout sent to a
// thermal print surface.
func FormatTicket(r *domain.Receipt) string {
	var b strings.Builder

	writeCentered(&b, r.StructureName)
	writeCentered(&b, "RECU "+r.ReceiptNumber)
	b.WriteString(strings.Repeat("-", ticketWidth) + "\n")

	for _, l := range r.Lines {
		b.WriteString(l.ProductName + "\n")
		detail := fmt.Sprintf("  %d x %s", l.Quantity, formatAmount(l.UnitPrice))
		total := formatAmount(l.LineTotal)
		b.WriteString(padBetween(detail, total) + "\n")
	}

	b.WriteString(strings.Repeat("-", ticketWidth) + "\n")
	b.WriteString(padBetween("Sous-total", formatAmount(r.Subtotal)) + "\n")
	if r.Discount > 0 {
		b.WriteString(padBetween("Remise", "-"+formatAmount(r.Discount)) + "\n")
	}
	b.WriteString(padBetween("TOTAL", formatAmount(r.Total)) + "\n")
	if r.Method == domain.MethodCash {
		b.WriteString(padBetween("Recu", formatAmount(r.CashReceived)) + "\n")
		b.WriteString(padBetween("Rendu", formatAmount(r.ChangeDue)) + "\n")
	}
	b.WriteString(padBetween("Paiement", r.MethodLabel) + "\n")
	b.WriteString(strings.Repeat("-", ticketWidth) + "\n")
	writeCentered(&b, "Facture "+r.InvoiceNumber)
	writeCentered(&b, "Merci de votre visite")

	return b.String()
}

// FormatShareText renders the plain-text summary used for messaging
// share links.
func FormatShareText(r *domain.Receipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reçu %s - %s\n", r.ReceiptNumber, r.StructureName)
	for _, l := range r.Lines {
		fmt.Fprintf(&b, "%s x%d : %s FCFA\n", l.ProductName, l.Quantity, formatAmount(l.LineTotal))
	}
	if r.Discount > 0 {
		fmt.Fprintf(&b, "Remise : %s FCFA\n", formatAmount(r.Discount))
	}
	fmt.Fprintf(&b, "Total : %s FCFA (%s)\n", formatAmount(r.Total), r.MethodLabel)
	fmt.Fprintf(&b, "Facture %s", r.InvoiceNumber)
	return b.String()
}

// formatAmount groups digits by thousands, the usual XOF presentation.
func formatAmount(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%d", v)
	if len(s) > 3 {
		var parts []string
		for len(s) > 3 {
			parts = append([]string{s[len(s)-3:]}, parts...)
			s = s[:len(s)-3]
		}
		s = s + " " + strings.Join(parts, " ")
	}
	if neg {
		return "-" + s
	}
	return s
}

func writeCentered(b *strings.Builder, text string) {
	if text == "" {
		return
	}
	if len(text) >= ticketWidth {
		b.WriteString(text + "\n")
		return
	}
	pad := (ticketWidth - len(text)) / 2
	b.WriteString(strings.Repeat(" ", pad) + text + "\n")
}

func padBetween(left, right string) string {
	gap := ticketWidth - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
