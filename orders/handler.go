package orders

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"foodhut/database"
	"foodhut/model"
	"foodhut/render"

	"github.com/jmoiron/sqlx"
)

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{"message": message})
}

// OrderListResponse は注文一覧・検索結果です。
type OrderListResponse struct {
	Items   []model.Order `json:"items"`
	Message string        `json:"message,omitempty"`
}

func listOrders(db *sqlx.DB, q string) ([]model.Order, error) {
	if q != "" {
		return database.SearchOrders(db, q)
	}
	return database.GetAllOrders(db)
}

// ListOrdersHandler は全注文を返します。?q= があればユーザー名・品目名・状態・注文IDで検索します。
func ListOrdersHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		items, err := listOrders(db, q)
		if err != nil {
			log.Printf("ERROR: list orders (q=%q): %v", q, err)
			writeJSONError(w, "Failed to get orders.", http.StatusInternalServerError)
			return
		}

		resp := OrderListResponse{Items: items}
		if len(items) == 0 {
			if q != "" {
				resp.Message = "No matching orders found."
			} else {
				resp.Message = "No orders available."
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// OrderTableHandler は注文一覧をHTMLテーブル断片で返します。
func OrderTableHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		items, err := listOrders(db, q)
		if err != nil {
			log.Printf("ERROR: order table (q=%q): %v", q, err)
			http.Error(w, "Failed to get orders", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(render.RenderOrderTableHTML(items)))
	}
}

// StatusesHandler は選択可能な注文状態を返します。
func StatusesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, model.OrderStatuses)
	}
}

// DeleteOrderHandler は注文を削除します。存在しないIDは 0 件削除として成功扱いです。
func DeleteOrderHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload struct {
			OrderID int64 `json:"orderId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if payload.OrderID < 1 {
			writeJSONError(w, "orderId must be 1 or greater.", http.StatusBadRequest)
			return
		}

		n, err := database.DeleteOrder(db, payload.OrderID)
		if err != nil {
			log.Printf("ERROR: delete order %d: %v", payload.OrderID, err)
			writeJSONError(w, "Failed to delete order.", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":      "Order deleted successfully!",
			"rowsAffected": n,
		})
	}
}

// UpdateOrderStatusHandler は注文の状態を更新します。どの状態からどの状態へも変更できます。
func UpdateOrderStatusHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload struct {
			OrderID int64             `json:"orderId"`
			Status  model.OrderStatus `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if payload.OrderID < 1 {
			writeJSONError(w, "orderId must be 1 or greater.", http.StatusBadRequest)
			return
		}
		if !payload.Status.Valid() {
			writeJSONError(w, "Unknown status: "+string(payload.Status), http.StatusBadRequest)
			return
		}

		n, err := database.UpdateOrderStatus(db, payload.OrderID, payload.Status)
		if err != nil {
			log.Printf("ERROR: update order %d status to %s: %v", payload.OrderID, payload.Status, err)
			writeJSONError(w, "Failed to update order status.", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":      "Order status updated successfully!",
			"rowsAffected": n,
		})
	}
}
