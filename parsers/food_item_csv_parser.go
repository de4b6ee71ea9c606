package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"foodhut/model"

	"github.com/shopspring/decimal"
)

// ParseFoodItemCSV はメニュー品目CSV (item_name,price) を解析します。
// 不正な行は WARN ログを出してスキップします。
func ParseFoodItemCSV(r io.Reader, encoding string) ([]model.FoodItem, error) {
	src, err := decodeReader(r, encoding)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(src)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSVファイルが空です")
	}
	if err != nil {
		return nil, fmt.Errorf("CSVヘッダーの読み取りに失敗: %w", err)
	}

	colIndex, err := getColIndex(header, []string{"item_name", "price"})
	if err != nil {
		return nil, err
	}

	var items []model.FoodItem
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: 品目CSV %d行目の読み取りエラー (スキップ): %v", line, err)
			continue
		}

		get := func(key string) string {
			if idx, ok := colIndex[key]; ok && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		name := get("item_name")
		if name == "" {
			log.Printf("WARN: 品目CSV %d行目 (品目名が空) (スキップ)", line)
			continue
		}
		price, err := decimal.NewFromString(get("price"))
		if err != nil || price.IsNegative() {
			log.Printf("WARN: 品目CSV %d行目 (価格が不正: %q) (スキップ)", line, get("price"))
			continue
		}

		items = append(items, model.FoodItem{ItemName: name, Price: price.InexactFloat64()})
	}

	return items, nil
}
