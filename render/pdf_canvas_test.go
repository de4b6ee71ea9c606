package render

import (
	"bytes"
	"testing"
)

func TestPDFCanvasWritesPDF(t *testing.T) {
	c := NewPDFCanvas()
	c.SetCompression(false)
	c.SetFont(true, 16)
	c.DrawString(30, 750, "My Shop")
	c.SetFont(true, 12)
	c.DrawString(30, 610, "Total: 21.00")

	out, err := c.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output does not start with %%PDF-: %q", out[:min(len(out), 16)])
	}
	for _, want := range []string{"(My Shop) Tj", "(Total: 21.00) Tj", "Helvetica-Bold"} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestToWinAnsi(t *testing.T) {
	tests := map[string]string{
		"Tea":  "Tea",
		"café": "caf\xe9",
		"€5":   "\x805",
		"日本茶":  "???",
	}
	for in, want := range tests {
		if got := toWinAnsi(in); got != want {
			t.Errorf("toWinAnsi(%q) = %q, want %q", in, got, want)
		}
	}
}
