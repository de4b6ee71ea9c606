package invoice

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"foodhut/config"
	"foodhut/model"
	"foodhut/render"
	"foodhut/session"
)

const (
	FileName = "invoice.pdf"
	MimeType = "application/pdf"
)

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{"message": message})
}

// NewCanvas は設定された描画方式の Canvas を返します。
func NewCanvas(cfg config.Config) Canvas {
	if cfg.PDFRenderer == config.RendererChromium {
		return render.NewChromiumCanvas("Invoice", cfg.ChromiumPath)
	}
	return render.NewPDFCanvas()
}

// validateItem は明細追加時の必須項目と範囲を検証します。
func validateItem(it model.InvoiceLineItem) string {
	switch {
	case strings.TrimSpace(it.Name) == "" || strings.TrimSpace(it.HSN) == "":
		return "Please fill in all required fields."
	case it.Qty < 1:
		return "Quantity must be 1 or greater."
	case it.Price < 0:
		return "Price must not be negative."
	case it.GST < 0:
		return "GST must not be negative."
	}
	return ""
}

// ItemsHandler は GET でセッション内の明細一覧を返し、POST で明細を1行追加します。
func ItemsHandler(store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := store.Load(w, r)

		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]interface{}{"items": itemsOrEmpty(st.Items)})
		case http.MethodPost:
			var item model.InvoiceLineItem
			if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
				writeJSONError(w, "Invalid request body", http.StatusBadRequest)
				return
			}
			if msg := validateItem(item); msg != "" {
				writeJSONError(w, msg, http.StatusBadRequest)
				return
			}
			st.Items = append(st.Items, item)
			store.Save(st)
			writeJSON(w, http.StatusCreated, map[string]interface{}{
				"message": "Item added successfully!",
				"items":   st.Items,
			})
		default:
			writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	}
}

// ClearItemsHandler はセッション内の明細をすべて削除します。
func ClearItemsHandler(store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		st := store.Load(w, r)
		st.Items = nil
		store.Save(st)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Items cleared!"})
	}
}

type generateRequest struct {
	Shop   *model.ShopProfile `json:"shop"`
	BillTo string             `json:"billTo"`
}

// decodeGenerateRequest は店舗情報と請求先を読み取り、必須項目を検証します。
// 店舗情報が省略された場合は設定の既定値を使います。
func decodeGenerateRequest(w http.ResponseWriter, r *http.Request, st *session.State) (model.ShopProfile, string, bool) {
	if r.Method != http.MethodPost {
		writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return model.ShopProfile{}, "", false
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return model.ShopProfile{}, "", false
	}

	shop := config.GetConfig().Shop
	if req.Shop != nil {
		shop = *req.Shop
	}
	if shop.Name == "" || shop.Address == "" || shop.GSTIN == "" || shop.Contact == "" ||
		strings.TrimSpace(req.BillTo) == "" || len(st.Items) == 0 {
		writeJSONError(w, "Please fill in all required details and add at least one item.", http.StatusBadRequest)
		return model.ShopProfile{}, "", false
	}
	return shop, req.BillTo, true
}

// GenerateInvoiceHandler はセッション内の明細から請求書PDFを生成してダウンロードさせます。
func GenerateInvoiceHandler(store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := store.Load(w, r)
		shop, billTo, ok := decodeGenerateRequest(w, r, st)
		if !ok {
			return
		}

		pdf, err := Generate(NewCanvas(config.GetConfig()), shop, billTo, st.Items)
		if err != nil {
			log.Printf("ERROR: generate invoice: %v", err)
			writeJSONError(w, "Failed to generate invoice.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", MimeType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+FileName+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
		w.Write(pdf)
	}
}

// PreviewInvoiceHandler は請求書をPDFと同じ配置のHTMLで返します。
func PreviewInvoiceHandler(store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := store.Load(w, r)
		shop, billTo, ok := decodeGenerateRequest(w, r, st)
		if !ok {
			return
		}

		page, err := Generate(render.NewHTMLCanvas("Invoice"), shop, billTo, st.Items)
		if err != nil {
			log.Printf("ERROR: preview invoice: %v", err)
			http.Error(w, "Failed to render preview", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}

func itemsOrEmpty(items []model.InvoiceLineItem) []model.InvoiceLineItem {
	if items == nil {
		return []model.InvoiceLineItem{}
	}
	return items
}
