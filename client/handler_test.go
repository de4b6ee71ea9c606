package client

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"foodhut/database"
	"foodhut/loader"
	"foodhut/session"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := loader.InitDatabase(db, "", ""); err != nil {
		t.Fatalf("InitDatabase: %v", err)
	}
	return db
}

type testClient struct {
	t    *testing.T
	srv  *httptest.Server
	http *http.Client
}

func newTestClient(t *testing.T, db *sqlx.DB) *testClient {
	t.Helper()
	store := session.NewStore()
	mux := http.NewServeMux()
	mux.HandleFunc("/register", RegisterHandler(db))
	mux.HandleFunc("/login", LoginHandler(db, store))
	mux.HandleFunc("/logout", LogoutHandler(store))
	mux.HandleFunc("/session", SessionHandler(store))
	mux.HandleFunc("/menu", MenuHandler(db))
	mux.HandleFunc("/order", PlaceOrderHandler(db, store))
	mux.HandleFunc("/orders", MyOrdersHandler(db, store))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &testClient{t: t, srv: srv, http: &http.Client{Jar: jar}}
}

func (c *testClient) do(method, path, body string, out interface{}) int {
	c.t.Helper()
	req, err := http.NewRequest(method, c.srv.URL+path, strings.NewReader(body))
	if err != nil {
		c.t.Fatal(err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func TestRegisterTwice(t *testing.T) {
	db := newTestDB(t)
	c := newTestClient(t, db)

	if code := c.do(http.MethodPost, "/register", `{"username":"alice","password":"pw"}`, nil); code != http.StatusCreated {
		t.Fatalf("register = %d", code)
	}
	var msg map[string]string
	if code := c.do(http.MethodPost, "/register", `{"username":"alice","password":"pw"}`, &msg); code != http.StatusConflict {
		t.Errorf("second register = %d, want 409", code)
	}
	if !strings.Contains(msg["message"], "may already exist") {
		t.Errorf("message = %q", msg["message"])
	}
	users, _ := database.GetAllUsers(db)
	if len(users) != 1 {
		t.Errorf("users = %+v", users)
	}

	if code := c.do(http.MethodPost, "/register", `{"username":"","password":"pw"}`, nil); code != http.StatusBadRequest {
		t.Errorf("empty username = %d, want 400", code)
	}
}

func TestClientOrderFlow(t *testing.T) {
	db := newTestDB(t)
	database.CreateFoodItem(db, "Tea", 10.0)
	database.CreateFoodItem(db, "Coffee", 15.0)
	database.CreateUser(db, "alice", "pw")
	c := newTestClient(t, db)

	if code := c.do(http.MethodPost, "/order", `{"foodItem":"Tea","quantity":1}`, nil); code != http.StatusUnauthorized {
		t.Errorf("order before login = %d, want 401", code)
	}
	if code := c.do(http.MethodGet, "/orders", "", nil); code != http.StatusUnauthorized {
		t.Errorf("orders before login = %d, want 401", code)
	}
	if code := c.do(http.MethodPost, "/login", `{"username":"alice","password":"nope"}`, nil); code != http.StatusUnauthorized {
		t.Errorf("bad login = %d, want 401", code)
	}
	if code := c.do(http.MethodPost, "/login", `{"username":"alice","password":"pw"}`, nil); code != http.StatusOK {
		t.Fatalf("login = %d", code)
	}

	var sess struct {
		LoggedIn bool   `json:"loggedIn"`
		Username string `json:"username"`
	}
	c.do(http.MethodGet, "/session", "", &sess)
	if !sess.LoggedIn || sess.Username != "alice" {
		t.Errorf("session = %+v", sess)
	}

	var placed struct {
		Order struct {
			Total  float64 `json:"total"`
			Status string  `json:"status"`
		} `json:"order"`
	}
	if code := c.do(http.MethodPost, "/order", `{"foodItem":"Tea","quantity":3}`, &placed); code != http.StatusCreated {
		t.Fatalf("order = %d", code)
	}
	if placed.Order.Total != 30.0 || placed.Order.Status != "Pending" {
		t.Errorf("placed = %+v", placed.Order)
	}
	c.do(http.MethodPost, "/order", `{"foodItem":"Coffee","quantity":2}`, nil)

	if code := c.do(http.MethodPost, "/order", `{"foodItem":"Pizza","quantity":1}`, nil); code != http.StatusNotFound {
		t.Errorf("unknown item = %d, want 404", code)
	}
	if code := c.do(http.MethodPost, "/order", `{"foodItem":"Tea","quantity":0}`, nil); code != http.StatusBadRequest {
		t.Errorf("zero quantity = %d, want 400", code)
	}

	// メニュー価格を変更しても既存注文の合計は変わらない
	database.UpdateFoodItemPrice(db, "Tea", 50.0)

	var mine MyOrdersResponse
	if code := c.do(http.MethodGet, "/orders", "", &mine); code != http.StatusOK {
		t.Fatalf("my orders = %d", code)
	}
	if len(mine.Orders) != 2 || mine.Username != "alice" {
		t.Fatalf("my orders = %+v", mine)
	}
	if math.Abs(mine.GrandTotal-60.0) > 1e-9 {
		t.Errorf("grand total = %v, want 60", mine.GrandTotal)
	}

	if code := c.do(http.MethodPost, "/logout", "", nil); code != http.StatusOK {
		t.Fatalf("logout = %d", code)
	}
	c.do(http.MethodGet, "/session", "", &sess)
	if sess.LoggedIn || sess.Username != "" {
		t.Errorf("session after logout = %+v", sess)
	}
	if code := c.do(http.MethodGet, "/orders", "", nil); code != http.StatusUnauthorized {
		t.Errorf("orders after logout = %d, want 401", code)
	}
}

func TestMenuHandlerEmpty(t *testing.T) {
	db := newTestDB(t)
	c := newTestClient(t, db)

	var resp struct {
		Items   []interface{} `json:"items"`
		Message string        `json:"message"`
	}
	if code := c.do(http.MethodGet, "/menu", "", &resp); code != http.StatusOK {
		t.Fatalf("menu = %d", code)
	}
	if len(resp.Items) != 0 || resp.Message == "" {
		t.Errorf("menu = %+v", resp)
	}
}
