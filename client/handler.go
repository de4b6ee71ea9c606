package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"foodhut/database"
	"foodhut/invoice"
	"foodhut/model"
	"foodhut/session"

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

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentials, bool) {
	var c credentials
	if r.Method != http.MethodPost {
		writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return c, false
	}
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return c, false
	}
	c.Username = strings.TrimSpace(c.Username)
	if c.Username == "" || c.Password == "" {
		writeJSONError(w, "Username and password are required.", http.StatusBadRequest)
		return c, false
	}
	return c, true
}

// RegisterHandler は利用者を登録します。失敗理由（重複かどうか）は利用者に区別して見せません。
func RegisterHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := decodeCredentials(w, r)
		if !ok {
			return
		}
		if err := database.CreateUser(db, c.Username, c.Password); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, database.ErrDuplicateKey) {
				status = http.StatusConflict
			} else {
				log.Printf("ERROR: register user %s: %v", c.Username, err)
			}
			writeJSONError(w, "Registration failed. Username may already exist.", status)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Registered successfully! Please login."})
	}
}

// LoginHandler は認証に成功したらセッションをログイン状態にします。
func LoginHandler(db *sqlx.DB, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := decodeCredentials(w, r)
		if !ok {
			return
		}
		st := store.Load(w, r)

		valid, err := database.AuthenticateUser(db, c.Username, c.Password)
		if err != nil {
			log.Printf("ERROR: authenticate %s: %v", c.Username, err)
			writeJSONError(w, "Login failed.", http.StatusInternalServerError)
			return
		}
		if !valid {
			writeJSONError(w, "Invalid credentials.", http.StatusUnauthorized)
			return
		}

		st.LoggedIn = true
		st.Username = c.Username
		store.Save(st)
		writeJSON(w, http.StatusOK, map[string]string{
			"message":  "Logged in successfully!",
			"username": st.Username,
		})
	}
}

// LogoutHandler はセッションの状態を初期化します。
func LogoutHandler(store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		st := store.Load(w, r)
		store.Clear(st.ID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully!"})
	}
}

// SessionHandler は現在のログイン状態を返します。
func SessionHandler(store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := store.Load(w, r)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"loggedIn": st.LoggedIn,
			"username": st.Username,
		})
	}
}

// MenuHandler は注文可能な品目一覧を返します。
func MenuHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := database.GetAllFoodItems(db)
		if err != nil {
			log.Printf("ERROR: get menu: %v", err)
			writeJSONError(w, "Failed to get menu.", http.StatusInternalServerError)
			return
		}
		resp := map[string]interface{}{"items": items}
		if len(items) == 0 {
			resp["message"] = "No food items available."
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// requireLogin はログイン中のセッションを返します。未ログインなら 401 を書いて nil を返します。
func requireLogin(w http.ResponseWriter, r *http.Request, store *session.Store) *session.State {
	st := store.Load(w, r)
	if !st.LoggedIn {
		writeJSONError(w, "Please login first.", http.StatusUnauthorized)
		return nil
	}
	return st
}

// PlaceOrderHandler はメニューの現在価格で注文を登録します。
func PlaceOrderHandler(db *sqlx.DB, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		st := requireLogin(w, r, store)
		if st == nil {
			return
		}

		var payload struct {
			FoodItem string `json:"foodItem"`
			Quantity int    `json:"quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if payload.FoodItem == "" {
			writeJSONError(w, "Food item is required.", http.StatusBadRequest)
			return
		}
		if payload.Quantity < 1 {
			writeJSONError(w, "Quantity must be 1 or greater.", http.StatusBadRequest)
			return
		}

		item, err := database.GetFoodItemByName(db, payload.FoodItem)
		if err != nil {
			log.Printf("ERROR: lookup food item %s: %v", payload.FoodItem, err)
			writeJSONError(w, "Failed to place order.", http.StatusInternalServerError)
			return
		}
		if item == nil {
			writeJSONError(w, fmt.Sprintf("Food item not found: %s", payload.FoodItem), http.StatusNotFound)
			return
		}

		order, err := database.PlaceOrder(db, st.Username, item.ItemName, item.Price, payload.Quantity)
		if err != nil {
			log.Printf("ERROR: place order for %s: %v", st.Username, err)
			writeJSONError(w, "Failed to place order.", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: order %d placed by %s (%s x %d)", order.OrderID, order.Username, order.FoodItem, order.Quantity)
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Order placed successfully!",
			"order":   order,
		})
	}
}

// MyOrdersResponse はログイン中の利用者の注文一覧と総合計です。
type MyOrdersResponse struct {
	Username   string        `json:"username"`
	Orders     []model.Order `json:"orders"`
	GrandTotal float64       `json:"grandTotal"`
	Message    string        `json:"message,omitempty"`
}

// MyOrdersHandler はログイン中の利用者の注文履歴と総合計を返します。
func MyOrdersHandler(db *sqlx.DB, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := requireLogin(w, r, store)
		if st == nil {
			return
		}

		orders, err := database.GetOrdersByUsername(db, st.Username)
		if err != nil {
			log.Printf("ERROR: get orders for %s: %v", st.Username, err)
			writeJSONError(w, "Failed to get orders.", http.StatusInternalServerError)
			return
		}

		totals := make([]float64, 0, len(orders))
		for _, o := range orders {
			totals = append(totals, o.Total)
		}
		resp := MyOrdersResponse{
			Username:   st.Username,
			Orders:     orders,
			GrandTotal: invoice.Accumulate(totals),
		}
		if len(orders) == 0 {
			resp.Message = "No orders yet."
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
