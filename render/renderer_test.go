package render

import (
	"strings"
	"testing"

	"foodhut/model"
)

func TestRenderOrderTableHTMLEmpty(t *testing.T) {
	out := RenderOrderTableHTML(nil)
	if !strings.Contains(out, `<td colspan="7">No orders available.</td>`) {
		t.Errorf("empty table missing placeholder row:\n%s", out)
	}
}

func TestRenderOrderTableHTMLRows(t *testing.T) {
	out := RenderOrderTableHTML([]model.Order{
		{OrderID: 7, Username: "alice", FoodItem: "Fish & Chips", Price: 10, Quantity: 3, Total: 30, Status: model.StatusInProgress},
	})
	for _, want := range []string{
		`<td class="right col-id">7</td>`,
		`<td class="col-item">Fish &amp; Chips</td>`,
		`<td class="right col-total">30.00</td>`,
		`<td class="center col-status">In Progress</td>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %s", want)
		}
	}
}
