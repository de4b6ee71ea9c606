package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// Letter サイズ（ポイント）
const (
	PageWidth  = 612.0
	PageHeight = 792.0
)

// PDFCanvas は fpdf を使って Letter 1ページに描画する Canvas です。
// 受け取る y 座標は左下原点で、fpdf の左上原点に変換して描画します。
type PDFCanvas struct {
	pdf *fpdf.Fpdf
}

// NewPDFCanvas は空白ページを1枚持つ PDFCanvas を返します。
func NewPDFCanvas() *PDFCanvas {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCreator("foodhut", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	return &PDFCanvas{pdf: pdf}
}

// SetCompression はコンテンツストリームの圧縮を切り替えます。
func (c *PDFCanvas) SetCompression(on bool) {
	c.pdf.SetCompression(on)
}

func (c *PDFCanvas) SetFont(bold bool, size float64) {
	style := ""
	if bold {
		style = "B"
	}
	c.pdf.SetFont("Helvetica", style, size)
}

func (c *PDFCanvas) DrawString(x, y float64, text string) {
	c.pdf.Text(x, PageHeight-y, toWinAnsi(text))
}

func (c *PDFCanvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("fpdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}

// toWinAnsi は標準フォント (cp1252) で表示できるように文字列を変換します。
// 変換できない文字は '?' にします。
func toWinAnsi(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		sb.WriteByte(b)
	}
	return sb.String()
}
