package model

// OrderStatus は注文の状態です。値の綴り・大文字小文字は画面表示そのままです。
type OrderStatus string

const (
	StatusPending      OrderStatus = "Pending"
	StatusInProgress   OrderStatus = "In Progress"
	StatusCompleted    OrderStatus = "Completed"
	StatusCanceled     OrderStatus = "canceled"
	StatusIn2Hours     OrderStatus = "In 2hours"
	StatusNotAvailable OrderStatus = "Not Available"
	StatusClosed       OrderStatus = "Closed"
)

// OrderStatuses は選択可能な状態を画面の並び順で保持します。
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusCanceled,
	StatusIn2Hours,
	StatusNotAvailable,
	StatusClosed,
}

// Valid は s が定義済みの状態かどうかを返します。
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order は orders テーブルのレコードを表します。
// Price と Total は注文時点のスナップショットで、後からメニュー価格が変わっても再計算しません。
type Order struct {
	OrderID  int64       `db:"order_id" json:"orderId"`
	Username string      `db:"username" json:"username"`
	FoodItem string      `db:"food_item" json:"foodItem"`
	Price    float64     `db:"price" json:"price"`
	Quantity int         `db:"quantity" json:"quantity"`
	Total    float64     `db:"total" json:"total"`
	Status   OrderStatus `db:"status" json:"status"`
}
