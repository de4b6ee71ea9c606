package render

import (
	"fmt"
	"html"
	"strings"

	"foodhut/model"
)

// RenderOrderTableHTML は注文レコードのスライスから管理画面用のHTMLテーブル文字列を生成します。
func RenderOrderTableHTML(orders []model.Order) string {
	var sb strings.Builder

	sb.WriteString(`
    <thead>
        <tr>
            <th class="col-id">Order ID</th>
            <th class="col-user">Username</th>
            <th class="col-item">Food Item</th>
            <th class="col-price">Price</th>
            <th class="col-qty">Quantity</th>
            <th class="col-total">Total</th>
            <th class="col-status">Status</th>
        </tr>
    </thead>`)

	sb.WriteString(`<tbody>`)
	if len(orders) == 0 {
		sb.WriteString(`<tr><td colspan="7">No orders available.</td></tr>`)
	} else {
		for _, o := range orders {
			sb.WriteString(`<tr>`)
			sb.WriteString(fmt.Sprintf(`<td class="right col-id">%d</td>`, o.OrderID))
			sb.WriteString(fmt.Sprintf(`<td class="col-user">%s</td>`, html.EscapeString(o.Username)))
			sb.WriteString(fmt.Sprintf(`<td class="col-item">%s</td>`, html.EscapeString(o.FoodItem)))
			sb.WriteString(fmt.Sprintf(`<td class="right col-price">%.2f</td>`, o.Price))
			sb.WriteString(fmt.Sprintf(`<td class="right col-qty">%d</td>`, o.Quantity))
			sb.WriteString(fmt.Sprintf(`<td class="right col-total">%.2f</td>`, o.Total))
			sb.WriteString(fmt.Sprintf(`<td class="center col-status">%s</td>`, html.EscapeString(string(o.Status))))
			sb.WriteString(`</tr>`)
		}
	}
	sb.WriteString(`</tbody>`)

	return sb.String()
}
