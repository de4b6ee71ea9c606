package config

import (
	"encoding/json"
	"os"
	"sync"

	"foodhut/model"
)

const (
	RendererFPDF     = "fpdf"
	RendererChromium = "chromium"
)

type Config struct {
	ListenAddr          string            `json:"listenAddr"`
	DBDriver            string            `json:"dbDriver"`
	DBSource            string            `json:"dbSource"`
	PDFRenderer         string            `json:"pdfRenderer"`
	ChromiumPath        string            `json:"chromiumPath"`
	SeedCatalogPath     string            `json:"seedCatalogPath"`
	SeedCatalogEncoding string            `json:"seedCatalogEncoding"`
	OpenBrowser         bool              `json:"openBrowser"`
	Shop                model.ShopProfile `json:"shop"`
}

var (
	cfg = Defaults()
	mu  sync.RWMutex
)

const configFilePath = "./foodhut_config.json"

// Defaults は設定ファイルがない場合の既定値を返します。
func Defaults() Config {
	return Config{
		ListenAddr:  ":8080",
		DBDriver:    "sqlite3",
		DBSource:    "./food_ordering_system.db?_journal_mode=WAL&_busy_timeout=5000",
		PDFRenderer: RendererFPDF,
		Shop: model.ShopProfile{
			Name:    "My Shop",
			Address: "123 Market Street",
			GSTIN:   "22AAAAA0000A1Z5",
			Contact: "9876543210",
		},
	}
}

// applyDefaults は空の項目を既定値で埋めます。
func applyDefaults(c *Config) {
	d := Defaults()
	if c.ListenAddr == "" {
		c.ListenAddr = d.ListenAddr
	}
	if c.DBDriver == "" {
		c.DBDriver = d.DBDriver
	}
	if c.DBSource == "" {
		c.DBSource = d.DBSource
	}
	if c.PDFRenderer == "" {
		c.PDFRenderer = d.PDFRenderer
	}
	if c.Shop == (model.ShopProfile{}) {
		c.Shop = d.Shop
	}
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = Defaults()
			return cfg, nil
		}
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&tempCfg)
	cfg = tempCfg

	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	applyDefaults(&newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
