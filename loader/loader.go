package loader

import (
	_ "embed"
	"fmt"
	"io"
	"log"
	"os"

	"foodhut/database"
	"foodhut/parsers"

	"github.com/jmoiron/sqlx"
)

var (
	//go:embed schema_sqlite.sql
	sqliteSchema string
	//go:embed schema_postgres.sql
	postgresSchema string
)

// InitDatabase はデータベーススキーマを適用し、品目CSVがあれば初期データとしてロードします。
// スキーマは CREATE ... IF NOT EXISTS のみで、何度実行しても同じ結果になります。
func InitDatabase(db *sqlx.DB, seedPath, seedEncoding string) error {
	log.Println("Applying database schema...")
	if err := applySchema(db); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Println("Schema applied successfully.")

	if seedPath == "" {
		return nil
	}
	if _, err := os.Stat(seedPath); os.IsNotExist(err) {
		log.Printf("WARN: %s not found, skipping.", seedPath)
		return nil
	}

	log.Printf("Loading %s...", seedPath)
	n, err := LoadFoodItemCSV(db, seedPath, seedEncoding)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", seedPath, err)
	}
	log.Printf("Loaded %d food items from %s.", n, seedPath)
	return nil
}

// applySchema はドライバに対応する埋め込みスキーマを実行します。
func applySchema(db *sqlx.DB) error {
	var schema string
	switch db.DriverName() {
	case "sqlite3":
		schema = sqliteSchema
	case "postgres":
		schema = postgresSchema
	default:
		return fmt.Errorf("unsupported database driver: %s", db.DriverName())
	}
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// LoadFoodItemCSV は品目CSVファイルを読み込み、food_items に挿入（または価格を更新）します。
func LoadFoodItemCSV(db *sqlx.DB, path, encoding string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer f.Close()
	return ImportFoodItems(db, f, encoding)
}

// ImportFoodItems は品目CSVストリームを1トランザクションで取り込みます。
func ImportFoodItems(db *sqlx.DB, r io.Reader, encoding string) (count int, err error) {
	items, err := parsers.ParseFoodItemCSV(r, encoding)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			log.Printf("Rolling back food item import due to error: %v", err)
			tx.Rollback()
		} else {
			err = tx.Commit()
			if err != nil {
				log.Printf("Error committing food item import: %v", err)
			}
		}
	}()

	count, err = database.UpsertFoodItemsInTx(tx, items)
	if err != nil {
		return 0, err
	}
	log.Printf("Inserted or replaced %d rows into food_items", count)
	return count, nil
}
