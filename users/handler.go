package users

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"foodhut/database"
	"foodhut/model"

	"github.com/jmoiron/sqlx"
)

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

type UserListResponse struct {
	Items   []model.User `json:"items"`
	Message string       `json:"message,omitempty"`
}

// ListUsersHandler は利用者一覧を返します。?q= があればユーザー名・パスワードの部分一致で検索します。
func ListUsersHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))

		var (
			items []model.User
			err   error
		)
		if q != "" {
			items, err = database.SearchUsers(db, q)
		} else {
			items, err = database.GetAllUsers(db)
		}
		if err != nil {
			log.Printf("ERROR: list users (q=%q): %v", q, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to get users."})
			return
		}

		resp := UserListResponse{Items: items}
		if len(items) == 0 {
			if q != "" {
				resp.Message = "No matching users found."
			} else {
				resp.Message = "No users available."
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// DeleteUserHandler は利用者を削除します。その利用者の注文は削除しません。
func DeleteUserHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "Method Not Allowed"})
			return
		}
		var payload struct {
			Username string `json:"username"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
			return
		}
		if payload.Username == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Username is required."})
			return
		}

		n, err := database.DeleteUser(db, payload.Username)
		if err != nil {
			log.Printf("ERROR: delete user %s: %v", payload.Username, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to delete user."})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":      "User deleted successfully!",
			"rowsAffected": n,
		})
	}
}
