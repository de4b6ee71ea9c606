package model

// FoodItem は food_items テーブルのレコード（メニュー品目）を表します。
type FoodItem struct {
	ItemName string  `db:"item_name" json:"itemName"`
	Price    float64 `db:"price" json:"price"`
}

// User は users テーブルのレコードを表します。パスワードは平文で保持されます。
type User struct {
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"password"`
}
