package invoice

import (
	"fmt"
	"strconv"

	"foodhut/model"
)

// Canvas は絶対座標でテキストを描画し、最後にバイト列へ書き出す描画先です。
// 座標はポイント単位、原点はページ左下です。
type Canvas interface {
	SetFont(bold bool, size float64)
	DrawString(x, y float64, text string)
	Bytes() ([]byte, error)
}

// DrawCommand は1回分のテキスト描画です。
type DrawCommand struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Bold bool    `json:"bold"`
	Size float64 `json:"size"`
	Text string  `json:"text"`
}

const (
	marginX    = 30
	rowStartY  = 625
	rowStep    = 15
	headerY    = 640
	bodySize   = 12
	headerSize = 12
)

var (
	columnHeaders   = []string{"Item Name", "Qty", "Price", "HSN", "GST", "Amount"}
	columnPositions = []float64{30, 150, 200, 250, 300, 400}
)

// Layout は請求書1ページ分の描画コマンドを上から順に返します。
// 明細がページ下端を超えても改ページはしません。
func Layout(shop model.ShopProfile, billTo string, items []model.InvoiceLineItem) []DrawCommand {
	cmds := make([]DrawCommand, 0, 16+len(items)*len(columnHeaders))
	draw := func(x, y float64, bold bool, size float64, text string) {
		cmds = append(cmds, DrawCommand{X: x, Y: y, Bold: bold, Size: size, Text: text})
	}

	// 店舗情報
	draw(marginX, 750, true, 16, shop.Name)
	draw(marginX, 735, false, 12, "Address: "+shop.Address)
	draw(marginX, 720, false, 12, "GSTIN: "+shop.GSTIN)
	draw(marginX, 705, false, 12, "Contact: "+shop.Contact)

	// 請求先
	draw(marginX, 680, true, 14, "Bill To:")
	draw(marginX, 665, false, 12, billTo)

	for i, h := range columnHeaders {
		draw(columnPositions[i], headerY, true, headerSize, h)
	}

	y := float64(rowStartY)
	amounts := make([]float64, 0, len(items))
	for _, item := range items {
		amount := LineAmount(item.Price, item.Qty, item.GST)
		amounts = append(amounts, amount)

		fields := []string{
			item.Name,
			strconv.Itoa(item.Qty),
			FormatMoney(item.Price),
			item.HSN,
			FormatPercent(item.GST),
			FormatMoney(amount),
		}
		for i, f := range fields {
			draw(columnPositions[i], y, false, bodySize, f)
		}
		y -= rowStep
	}

	draw(marginX, y-rowStep, true, bodySize, "Total: "+FormatMoney(Accumulate(amounts)))
	return cmds
}

// Generate はレイアウトを Canvas に描画し、完成した文書のバイト列を返します。
func Generate(c Canvas, shop model.ShopProfile, billTo string, items []model.InvoiceLineItem) ([]byte, error) {
	for _, cmd := range Layout(shop, billTo, items) {
		c.SetFont(cmd.Bold, cmd.Size)
		c.DrawString(cmd.X, cmd.Y, cmd.Text)
	}
	out, err := c.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize invoice: %w", err)
	}
	return out, nil
}
