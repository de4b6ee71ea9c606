package invoice

import (
	"strconv"
)

// LineAmount は税込の明細金額 qty * price * (1 + gst/100) を返します。丸めは行いません。
func LineAmount(price float64, qty int, gstPercent float64) float64 {
	return float64(qty) * price * (1 + gstPercent/100)
}

// Accumulate は明細金額の合計を返します。
func Accumulate(amounts []float64) float64 {
	var total float64
	for _, a := range amounts {
		total += a
	}
	return total
}

// FormatMoney は金額を小数2桁の文字列にします。
// float64 の2進値そのものを丸めるので 2.675 は "2.67" になります（ちょうど中間の値は偶数側）。
func FormatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatPercent は税率に "%" を付けます。整数なら小数部を省きます (5 -> "5%", 5.5 -> "5.5%")。
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
