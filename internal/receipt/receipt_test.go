package receipt

import (
	"strings"
	"testing"
	"time"

	"fayclick/internal/domain"
)

func sampleInvoice() *domain.Invoice {
	return &domain.Invoice{
		ID:     "inv-1",
		Number: "FV-20260828-000042",
		Lines: []domain.InvoiceLine{
			{ProductName: "Savon", UnitPrice: 1000, Quantity: 2, LineTotal: 2000},
			{ProductName: "Huile 1L", UnitPrice: 2500, Quantity: 1, LineTotal: 2500},
		},
		Subtotal: 4500,
		Discount: 500,
		Total:    4000,
	}
}

func TestBuild(t *testing.T) {
	inv := sampleInvoice()
	enc := &domain.Encashment{
		ReceiptNumber: "RC-20260828-000042",
		InvoiceID:     "inv-1",
		Method:        domain.MethodCash,
		Amount:        4000,
		CashReceived:  5000,
		ChangeDue:     1000,
		CreatedAt:     time.Now(),
	}

	r := Build(inv, enc, "Boutique Demo", 8)
	if r.ReceiptNumber != "RC-20260828-000042" || r.InvoiceNumber != "FV-20260828-000042" {
		t.Fatalf("unexpected numbers %+v", r)
	}
	if len(r.Lines) != 2 || r.Lines[0].LineTotal != 2000 {
		t.Fatalf("unexpected lines %+v", r.Lines)
	}
	if r.MethodLabel != "Espèces" {
		t.Fatalf("expected cash label, got %q", r.MethodLabel)
	}
	if r.DisplaySeconds != 8 {
		t.Fatalf("expected display seconds 8, got %d", r.DisplaySeconds)
	}
}

func TestFormatTicket_CashShowsChange(t *testing.T) {
	inv := sampleInvoice()
	enc := &domain.Encashment{
		ReceiptNumber: "RC-20260828-000042",
		Method:        domain.MethodCash,
		Amount:        4000,
		CashReceived:  5000,
		ChangeDue:     1000,
	}
	ticket := FormatTicket(Build(inv, enc, "Boutique Demo", 8))

	for _, want := range []string{
		"Boutique Demo",
		"RECU RC-20260828-000042",
		"Savon",
		"Sous-total",
		"Remise",
		"TOTAL",
		"Recu",
		"Rendu",
		"Espèces",
		"Facture FV-20260828-000042",
	} {
		if !strings.Contains(ticket, want) {
			t.Fatalf("ticket missing %q:\n%s", want, ticket)
		}
	}
	if !strings.Contains(ticket, "4 000") {
		t.Fatalf("expected grouped total in ticket:\n%s", ticket)
	}
}

func TestFormatTicket_WalletOmitsCashLines(t *testing.T) {
	inv := sampleInvoice()
	enc := &domain.Encashment{
		ReceiptNumber: "RC-20260828-000043",
		Method:        domain.MethodWave,
		Amount:        4000,
	}
	ticket := FormatTicket(Build(inv, enc, "Boutique Demo", 8))
	if strings.Contains(ticket, "Rendu") {
		t.Fatalf("wallet ticket should not show change:\n%s", ticket)
	}
	if !strings.Contains(ticket, "Wave") {
		t.Fatalf("expected Wave label:\n%s", ticket)
	}
}

func TestFormatShareText(t *testing.T) {
	inv := sampleInvoice()
	enc := &domain.Encashment{
		ReceiptNumber: "RC-20260828-000044",
		Method:        domain.MethodOM,
		Amount:        4000,
	}
	text := FormatShareText(Build(inv, enc, "Boutique Demo", 8))
	if !strings.Contains(text, "Total : 4 000 FCFA (Orange Money)") {
		t.Fatalf("unexpected share text:\n%s", text)
	}
	if !strings.Contains(text, "Savon x2 : 2 000 FCFA") {
		t.Fatalf("unexpected line rendering:\n%s", text)
	}
}

func TestFormatAmountGrouping(t *testing.T) {
	cases := map[int64]string{
		0:       "0",
		999:     "999",
		1000:    "1 000",
		4500:    "4 500",
		1234567: "1 234 567",
		-2500:   "-2 500",
	}
	for in, want := range cases {
		if got := formatAmount(in); got != want {
			t.Fatalf("formatAmount(%d) = %q, want %q", in, got, want)
		}
	}
}
