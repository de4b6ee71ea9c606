package database

import (
	"fmt"

	"foodhut/model"
)

const orderColumns = `order_id, username, food_item, price, quantity, total, status`

// PlaceOrder は注文を登録します。合計金額はここでだけ price * quantity として計算し、
// 状態は常に Pending で始まります。
func PlaceOrder(db DBTX, username, foodItem string, price float64, quantity int) (*model.Order, error) {
	o := model.Order{
		Username: username,
		FoodItem: foodItem,
		Price:    price,
		Quantity: quantity,
		Total:    price * float64(quantity),
		Status:   model.StatusPending,
	}

	const q = `
		INSERT INTO orders (username, food_item, price, quantity, total, status)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING order_id`
	if err := db.Get(&o.OrderID, db.Rebind(q), o.Username, o.FoodItem, o.Price, o.Quantity, o.Total, o.Status); err != nil {
		return nil, fmt.Errorf("PlaceOrder (User: %s, Item: %s) failed: %w", username, foodItem, err)
	}
	return &o, nil
}

// DeleteOrder は注文を削除し、削除件数を返します。
func DeleteOrder(db DBTX, orderID int64) (int64, error) {
	const q = `DELETE FROM orders WHERE order_id = ?`
	res, err := db.Exec(db.Rebind(q), orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete order %d: %w", orderID, err)
	}
	return res.RowsAffected()
}

// UpdateOrderStatus は注文の状態を書き換えます。遷移の制約はありません。
func UpdateOrderStatus(db DBTX, orderID int64, status model.OrderStatus) (int64, error) {
	const q = `UPDATE orders SET status = ? WHERE order_id = ?`
	res, err := db.Exec(db.Rebind(q), status, orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to update status of order %d: %w", orderID, err)
	}
	return res.RowsAffected()
}

func GetAllOrders(db DBTX) ([]model.Order, error) {
	orders := []model.Order{}
	if err := db.Select(&orders, "SELECT "+orderColumns+" FROM orders ORDER BY order_id"); err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetOrdersByUsername は利用者本人の注文一覧を返します。
func GetOrdersByUsername(db DBTX, username string) ([]model.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE username = ? ORDER BY order_id`
	orders := []model.Order{}
	if err := db.Select(&orders, db.Rebind(q), username); err != nil {
		return nil, fmt.Errorf("failed to get orders for %s: %w", username, err)
	}
	return orders, nil
}

// SearchOrders はユーザー名・品目名・状態・注文ID（文字列）のいずれかに q を含む注文を返します。
func SearchOrders(db DBTX, q string) ([]model.Order, error) {
	const query = `
		SELECT ` + orderColumns + ` FROM orders
		WHERE username LIKE ? ESCAPE '\'
		   OR food_item LIKE ? ESCAPE '\'
		   OR status LIKE ? ESCAPE '\'
		   OR CAST(order_id AS TEXT) LIKE ? ESCAPE '\'
		ORDER BY order_id`
	p := likePattern(q)
	orders := []model.Order{}
	if err := db.Select(&orders, db.Rebind(query), p, p, p, p); err != nil {
		return nil, fmt.Errorf("failed to search orders (%s): %w", q, err)
	}
	return orders, nil
}

// CountOrders は注文の件数を返します。
func CountOrders(db DBTX) (int, error) {
	var n int
	if err := db.Get(&n, "SELECT COUNT(*) FROM orders"); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return n, nil
}
