package invoice

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"foodhut/session"
)

type invoiceClient struct {
	t    *testing.T
	srv  *httptest.Server
	http *http.Client
}

func newInvoiceClient(t *testing.T) *invoiceClient {
	t.Helper()
	store := session.NewStore()
	mux := http.NewServeMux()
	mux.HandleFunc("/items", ItemsHandler(store))
	mux.HandleFunc("/items/clear", ClearItemsHandler(store))
	mux.HandleFunc("/generate", GenerateInvoiceHandler(store))
	mux.HandleFunc("/preview", PreviewInvoiceHandler(store))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &invoiceClient{t: t, srv: srv, http: &http.Client{Jar: jar}}
}

func (c *invoiceClient) do(method, path, body string) (*http.Response, []byte) {
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
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatal(err)
	}
	return resp, data
}

const shopBody = `{"shop":{"name":"My Shop","address":"123 Market Street","gstin":"22AAAAA0000A1Z5","contact":"9876543210"},"billTo":"Customer Name, Address"}`

func TestItemsHandlerValidation(t *testing.T) {
	c := newInvoiceClient(t)

	resp, _ := c.do(http.MethodPost, "/items", `{"name":"","qty":1,"price":1,"hsn":"1","gst":5}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing name = %d", resp.StatusCode)
	}
	resp, _ = c.do(http.MethodPost, "/items", `{"name":"Tea","qty":1,"price":1,"hsn":"","gst":5}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing hsn = %d", resp.StatusCode)
	}
	resp, _ = c.do(http.MethodPost, "/items", `{"name":"Tea","qty":0,"price":1,"hsn":"1","gst":5}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("qty 0 = %d", resp.StatusCode)
	}
	resp, _ = c.do(http.MethodPost, "/items", `{"name":"Tea","qty":1,"price":-1,"hsn":"1","gst":5}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("negative price = %d", resp.StatusCode)
	}

	resp, body := c.do(http.MethodGet, "/items", "")
	if resp.StatusCode != http.StatusOK || !bytes.Contains(body, []byte(`"items":[]`)) {
		t.Errorf("list = %d %s", resp.StatusCode, body)
	}
}

func TestItemsAddAndClear(t *testing.T) {
	c := newInvoiceClient(t)

	resp, _ := c.do(http.MethodPost, "/items", `{"name":"Tea","qty":2,"price":10,"hsn":"1001","gst":5}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add = %d", resp.StatusCode)
	}
	c.do(http.MethodPost, "/items", `{"name":"Coffee","qty":1,"price":15,"hsn":"1002","gst":12}`)

	var list struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	_, body := c.do(http.MethodGet, "/items", "")
	json.Unmarshal(body, &list)
	if len(list.Items) != 2 || list.Items[0].Name != "Tea" || list.Items[1].Name != "Coffee" {
		t.Errorf("items = %s", body)
	}

	c.do(http.MethodPost, "/items/clear", "")
	list.Items = nil
	_, body = c.do(http.MethodGet, "/items", "")
	json.Unmarshal(body, &list)
	if len(list.Items) != 0 {
		t.Errorf("items after clear = %s", body)
	}
}

func TestGenerateInvoiceHandler(t *testing.T) {
	c := newInvoiceClient(t)

	resp, _ := c.do(http.MethodPost, "/generate", shopBody)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("generate without items = %d, want 400", resp.StatusCode)
	}

	c.do(http.MethodPost, "/items", `{"name":"Tea","qty":2,"price":10,"hsn":"1001","gst":5}`)

	resp, _ = c.do(http.MethodPost, "/generate", `{"shop":{"name":"My Shop","address":"","gstin":"X","contact":"1"},"billTo":"Someone"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing address = %d, want 400", resp.StatusCode)
	}
	resp, _ = c.do(http.MethodPost, "/generate", `{"billTo":"  "}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing bill-to = %d, want 400", resp.StatusCode)
	}

	resp, body := c.do(http.MethodPost, "/generate", shopBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("generate = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != MimeType {
		t.Errorf("content type = %s", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, `filename="invoice.pdf"`) {
		t.Errorf("content disposition = %s", cd)
	}
	if !bytes.HasPrefix(body, []byte("%PDF-")) {
		t.Errorf("body is not a PDF")
	}
}

func TestGenerateUsesDefaultShop(t *testing.T) {
	c := newInvoiceClient(t)
	c.do(http.MethodPost, "/items", `{"name":"Tea","qty":2,"price":10,"hsn":"1001","gst":5}`)

	resp, body := c.do(http.MethodPost, "/preview", `{"billTo":"Walk-in"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("preview = %d: %s", resp.StatusCode, body)
	}
	page := string(body)
	for _, want := range []string{">My Shop<", ">Total: 21.00<", ">Walk-in<", ">5%<"} {
		if !strings.Contains(page, want) {
			t.Errorf("preview missing %s", want)
		}
	}
}
