package main

import (
	"net/http"

	"foodhut/catalog"
	"foodhut/client"
	"foodhut/invoice"
	"foodhut/loader"
	"foodhut/orders"
	"foodhut/session"
	"foodhut/users"

	"github.com/jmoiron/sqlx"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB) {
	store := session.NewStore()

	// 管理: メニュー品目
	mux.HandleFunc("/api/food_items", catalog.ListFoodItemsHandler(dbConn))
	mux.HandleFunc("/api/food_items/create", catalog.CreateFoodItemHandler(dbConn))
	mux.HandleFunc("/api/food_items/update", catalog.UpdateFoodItemHandler(dbConn))
	mux.HandleFunc("/api/food_items/delete", catalog.DeleteFoodItemHandler(dbConn))
	mux.HandleFunc("/api/food_items/import", catalog.ImportFoodItemsHandler(dbConn))
	mux.HandleFunc("/api/food_items/reload", loader.ReloadSeedCatalogHandler(dbConn))

	// 管理: 注文
	mux.HandleFunc("/api/orders", orders.ListOrdersHandler(dbConn))
	mux.HandleFunc("/api/orders/table", orders.OrderTableHandler(dbConn))
	mux.HandleFunc("/api/orders/statuses", orders.StatusesHandler())
	mux.HandleFunc("/api/orders/delete", orders.DeleteOrderHandler(dbConn))
	mux.HandleFunc("/api/orders/status", orders.UpdateOrderStatusHandler(dbConn))

	// 管理: 利用者
	mux.HandleFunc("/api/users", users.ListUsersHandler(dbConn))
	mux.HandleFunc("/api/users/delete", users.DeleteUserHandler(dbConn))

	// 利用者画面
	mux.HandleFunc("/api/client/register", client.RegisterHandler(dbConn))
	mux.HandleFunc("/api/client/login", client.LoginHandler(dbConn, store))
	mux.HandleFunc("/api/client/logout", client.LogoutHandler(store))
	mux.HandleFunc("/api/client/session", client.SessionHandler(store))
	mux.HandleFunc("/api/client/menu", client.MenuHandler(dbConn))
	mux.HandleFunc("/api/client/order", client.PlaceOrderHandler(dbConn, store))
	mux.HandleFunc("/api/client/orders", client.MyOrdersHandler(dbConn, store))

	// 請求書
	mux.HandleFunc("/api/invoice/items", invoice.ItemsHandler(store))
	mux.HandleFunc("/api/invoice/items/clear", invoice.ClearItemsHandler(store))
	mux.HandleFunc("/api/invoice/generate", invoice.GenerateInvoiceHandler(store))
	mux.HandleFunc("/api/invoice/preview", invoice.PreviewInvoiceHandler(store))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler()(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
}
