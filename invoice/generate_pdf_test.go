package invoice

import (
	"bytes"
	"testing"

	"foodhut/model"
	"foodhut/render"
)

func generatePlainPDF(t *testing.T, items []model.InvoiceLineItem) []byte {
	t.Helper()
	c := render.NewPDFCanvas()
	c.SetCompression(false)
	out, err := Generate(c, testShop, "Customer Name, Address", items)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
	return out
}

func TestGeneratePDFEmptyInvoice(t *testing.T) {
	out := generatePlainPDF(t, nil)
	for _, want := range []string{"(My Shop) Tj", "(Bill To:) Tj", "(Amount) Tj", "(Total: 0.00) Tj"} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("PDF missing %q", want)
		}
	}
}

func TestGeneratePDFWithItems(t *testing.T) {
	out := generatePlainPDF(t, []model.InvoiceLineItem{
		{Name: "Tea", Qty: 2, Price: 10, HSN: "1001", GST: 5},
		{Name: "Chai", Qty: 2, Price: 2.675, HSN: "1002", GST: 0},
	})
	for _, want := range []string{"(Tea) Tj", "(21.00) Tj", "(2.67) Tj", "(5%) Tj", "(5.35) Tj", "(Total: 26.35) Tj"} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("PDF missing %q", want)
		}
	}
}
