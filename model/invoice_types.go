package model

// ShopProfile は請求書ヘッダーに印字する店舗情報です（保存しません）。
type ShopProfile struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
	Contact string `json:"contact"`
}

// InvoiceLineItem は請求書の明細1行です（保存しません）。
// GST は税率（%）、HSN は品目分類コードです。
type InvoiceLineItem struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
	HSN   string  `json:"hsn"`
	GST   float64 `json:"gst"`
}
