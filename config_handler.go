package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"foodhut/config"
)

// writeJSONError はエラーメッセージをJSONで返します。
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// GetConfigHandler は現在の設定を返します
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cfg)
	}
}

// SaveConfigHandler は設定を保存します。DB接続・待受アドレスの変更は再起動後に反映されます。
func SaveConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			writeJSONError(w, "リクエストが不正です。", http.StatusBadRequest)
			return
		}

		switch newCfg.PDFRenderer {
		case "", config.RendererFPDF, config.RendererChromium:
		default:
			writeJSONError(w, "pdfRenderer は fpdf または chromium を指定してください。", http.StatusBadRequest)
			return
		}

		switch newCfg.DBDriver {
		case "", "sqlite3", "postgres":
		default:
			writeJSONError(w, "dbDriver は sqlite3 または postgres を指定してください。", http.StatusBadRequest)
			return
		}

		if err := validateExecutablePath(newCfg.ChromiumPath); err != nil {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := config.SaveConfig(newCfg); err != nil {
			log.Printf("Error saving config: %v", err)
			writeJSONError(w, "設定の保存に失敗しました。", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "設定を保存しました。"})
	}
}

// validateExecutablePath は Chromium の実行ファイルとして指定されたパスを検証します。
func validateExecutablePath(path string) error {
	if path == "" {
		return nil // 空なら rod が自動で探す
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New("指定された実行ファイルが見つかりません: " + path)
		}
		log.Printf("Error checking executable path: %v", err)
		return errors.New("実行ファイルの確認中にエラーが発生しました。")
	}
	if !info.Mode().IsRegular() {
		return errors.New("指定されたパスは通常のファイルではありません: " + path)
	}
	if info.Mode().Perm()&0111 == 0 {
		return errors.New("指定されたファイルは実行可能ではありません: " + path)
	}
	return nil
}
