package database

import (
	"database/sql"
	"fmt"

	"foodhut/model"

	"github.com/jmoiron/sqlx"
)

const foodItemColumns = `item_name, price`

// CreateFoodItem はメニュー品目を追加します。同名の品目があれば ErrDuplicateKey を返します。
func CreateFoodItem(db DBTX, name string, price float64) error {
	const q = `INSERT INTO food_items (item_name, price) VALUES (?, ?)`
	if _, err := db.Exec(db.Rebind(q), name, price); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("CreateFoodItem (Name: %s): %w", name, ErrDuplicateKey)
		}
		return fmt.Errorf("CreateFoodItem (Name: %s) failed: %w", name, err)
	}
	return nil
}

// DeleteFoodItem は品目を削除し、削除件数を返します。存在しない場合は 0 件でエラーにしません。
func DeleteFoodItem(db DBTX, name string) (int64, error) {
	const q = `DELETE FROM food_items WHERE item_name = ?`
	res, err := db.Exec(db.Rebind(q), name)
	if err != nil {
		return 0, fmt.Errorf("failed to delete food item %s: %w", name, err)
	}
	return res.RowsAffected()
}

// UpdateFoodItemPrice は品目の価格を更新し、更新件数を返します。
// 既存の注文は価格のスナップショットを持つため影響を受けません。
func UpdateFoodItemPrice(db DBTX, name string, newPrice float64) (int64, error) {
	const q = `UPDATE food_items SET price = ? WHERE item_name = ?`
	res, err := db.Exec(db.Rebind(q), newPrice, name)
	if err != nil {
		return 0, fmt.Errorf("failed to update food item %s: %w", name, err)
	}
	return res.RowsAffected()
}

func GetAllFoodItems(db DBTX) ([]model.FoodItem, error) {
	items := []model.FoodItem{}
	if err := db.Select(&items, "SELECT "+foodItemColumns+" FROM food_items"); err != nil {
		return nil, fmt.Errorf("failed to get all food items: %w", err)
	}
	return items, nil
}

// SearchFoodItems は品目名に q を含む品目を返します。
func SearchFoodItems(db DBTX, q string) ([]model.FoodItem, error) {
	const query = `SELECT ` + foodItemColumns + ` FROM food_items WHERE item_name LIKE ? ESCAPE '\'`
	items := []model.FoodItem{}
	if err := db.Select(&items, db.Rebind(query), likePattern(q)); err != nil {
		return nil, fmt.Errorf("failed to search food items (%s): %w", q, err)
	}
	return items, nil
}

// GetFoodItemByName は品目を1件取得します。見つからない場合は nil, nil を返します。
func GetFoodItemByName(db DBTX, name string) (*model.FoodItem, error) {
	const q = `SELECT ` + foodItemColumns + ` FROM food_items WHERE item_name = ?`
	var item model.FoodItem
	if err := db.Get(&item, db.Rebind(q), name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get food item %s: %w", name, err)
	}
	return &item, nil
}

// UpsertFoodItemsInTx はCSV取込用に品目を挿入または価格を更新します。
func UpsertFoodItemsInTx(tx *sqlx.Tx, items []model.FoodItem) (int, error) {
	const q = `
		INSERT INTO food_items (item_name, price)
		VALUES (?, ?)
		ON CONFLICT(item_name) DO UPDATE SET
			price = excluded.price
	`
	stmt, err := tx.Preparex(tx.Rebind(q))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare food item upsert statement: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, it := range items {
		if _, err := stmt.Exec(it.ItemName, it.Price); err != nil {
			return count, fmt.Errorf("UpsertFoodItemsInTx (Name: %s) failed: %w", it.ItemName, err)
		}
		count++
	}
	return count, nil
}
