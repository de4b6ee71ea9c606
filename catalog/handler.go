package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"foodhut/database"
	"foodhut/loader"
	"foodhut/model"

	"github.com/jmoiron/sqlx"
)

const msgAddFailed = "Failed to add food item. It might already exist."

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{"message": message})
}

// FoodItemListResponse は品目一覧・検索結果です。0件のときは Message に案内文が入ります。
type FoodItemListResponse struct {
	Items   []model.FoodItem `json:"items"`
	Message string           `json:"message,omitempty"`
}

// ListFoodItemsHandler は品目一覧を返します。?q= があれば品目名の部分一致で検索します。
func ListFoodItemsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))

		var (
			items []model.FoodItem
			err   error
		)
		if q != "" {
			items, err = database.SearchFoodItems(db, q)
		} else {
			items, err = database.GetAllFoodItems(db)
		}
		if err != nil {
			log.Printf("ERROR: list food items (q=%q): %v", q, err)
			writeJSONError(w, "Failed to get food items.", http.StatusInternalServerError)
			return
		}

		resp := FoodItemListResponse{Items: items}
		if len(items) == 0 {
			if q != "" {
				resp.Message = "No matching food items found."
			} else {
				resp.Message = "No food items available."
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type foodItemInput struct {
	ItemName string  `json:"itemName"`
	Price    float64 `json:"price"`
}

func decodeFoodItemInput(w http.ResponseWriter, r *http.Request) (foodItemInput, bool) {
	var in foodItemInput
	if r.Method != http.MethodPost {
		writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return in, false
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return in, false
	}
	in.ItemName = strings.TrimSpace(in.ItemName)
	if in.ItemName == "" {
		writeJSONError(w, "Food item name is required.", http.StatusBadRequest)
		return in, false
	}
	if in.Price < 0 {
		writeJSONError(w, "Price must not be negative.", http.StatusBadRequest)
		return in, false
	}
	return in, true
}

// CreateFoodItemHandler は品目を追加します。
// 重複もそれ以外の失敗も、利用者には同じメッセージを返します。
func CreateFoodItemHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeFoodItemInput(w, r)
		if !ok {
			return
		}

		if err := database.CreateFoodItem(db, in.ItemName, in.Price); err != nil {
			if errors.Is(err, database.ErrDuplicateKey) {
				writeJSONError(w, msgAddFailed, http.StatusConflict)
				return
			}
			log.Printf("ERROR: create food item %s: %v", in.ItemName, err)
			writeJSONError(w, msgAddFailed, http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Food item added successfully!"})
	}
}

// UpdateFoodItemHandler は品目の価格を更新します。存在しない品目は 0 件更新として成功扱いです。
func UpdateFoodItemHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeFoodItemInput(w, r)
		if !ok {
			return
		}

		n, err := database.UpdateFoodItemPrice(db, in.ItemName, in.Price)
		if err != nil {
			log.Printf("ERROR: update food item %s: %v", in.ItemName, err)
			writeJSONError(w, "Failed to update food item.", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":      "Food item updated successfully!",
			"rowsAffected": n,
		})
	}
}

// DeleteFoodItemHandler は品目を削除します。過去の注文には影響しません。
func DeleteFoodItemHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload struct {
			ItemName string `json:"itemName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		name := strings.TrimSpace(payload.ItemName)
		if name == "" {
			writeJSONError(w, "Food item name is required.", http.StatusBadRequest)
			return
		}

		n, err := database.DeleteFoodItem(db, name)
		if err != nil {
			log.Printf("ERROR: delete food item %s: %v", name, err)
			writeJSONError(w, "Failed to delete food item.", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":      "Food item deleted successfully!",
			"rowsAffected": n,
		})
	}
}

// ImportFoodItemsHandler は品目CSV (item_name,price) のアップロードを取り込みます。
// フォーム値 encoding=sjis で Shift-JIS のファイルを受け付けます。
func ImportFoodItemsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			writeJSONError(w, "CSVファイルの読み取りに失敗: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		n, err := loader.ImportFoodItems(db, file, r.FormValue("encoding"))
		if err != nil {
			log.Printf("ERROR: import food items: %v", err)
			writeJSONError(w, "CSVの取込に失敗しました: "+err.Error(), http.StatusBadRequest)
			return
		}
		if n == 0 {
			writeJSONError(w, "CSVから読み込むデータがありません。", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": fmt.Sprintf("%d件の品目を取り込みました。", n),
			"count":   n,
		})
	}
}
