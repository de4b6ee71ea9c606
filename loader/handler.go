package loader

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"foodhut/config"

	"github.com/jmoiron/sqlx"
)

// ReloadSeedCatalogHandler は設定された品目CSVを再読み込みします。
func ReloadSeedCatalogHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		log.Println("HTTP request received: Reloading seed catalog...")

		cfg := config.GetConfig()
		if cfg.SeedCatalogPath == "" {
			http.Error(w, "品目CSVのパスが設定されていません。", http.StatusBadRequest)
			return
		}
		if _, err := os.Stat(cfg.SeedCatalogPath); os.IsNotExist(err) {
			log.Printf("WARN: %s not found.", cfg.SeedCatalogPath)
			http.Error(w, "品目CSVが見つかりません: "+cfg.SeedCatalogPath, http.StatusNotFound)
			return
		}

		n, err := LoadFoodItemCSV(db, cfg.SeedCatalogPath, cfg.SeedCatalogEncoding)
		if err != nil {
			msg := fmt.Sprintf("failed to reload %s: %v", cfg.SeedCatalogPath, err)
			log.Println(msg)
			http.Error(w, msg, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": fmt.Sprintf("%d件の品目を読み込みました。", n),
			"count":   n,
		})
	}
}
