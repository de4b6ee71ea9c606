package main

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/sync/errgroup"

	"foodhut/config"
	"foodhut/loader"
	"foodhut/model"
)

//go:embed web/index.html
var webFS embed.FS

var appTemplate = template.Must(template.ParseFS(webFS, "web/index.html"))

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
		cfg = config.Defaults()
	}

	log.Printf("Connecting to database (%s)...", cfg.DBDriver)
	dbConn, err := sqlx.Open(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()
	if cfg.DBDriver == "sqlite3" {
		// sqlite は書き込みが1本なので接続を1つに絞る
		dbConn.SetMaxOpenConns(1)
	}
	if err := dbConn.Ping(); err != nil {
		log.Fatalf("db ping error: %v", err)
	}
	log.Println("Database connection successful.")

	if err := loader.InitDatabase(dbConn, cfg.SeedCatalogPath, cfg.SeedCatalogEncoding); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialization complete.")

	mux := http.NewServeMux()
	mux.HandleFunc("/", indexHandler)
	SetupRoutes(mux, dbConn)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting server on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.OpenBrowser {
		openBrowser("http://localhost" + cfg.ListenAddr)
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("Server stopped.")
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := appTemplate.ExecuteTemplate(w, "index.html", struct {
		Shop     model.ShopProfile
		Statuses []model.OrderStatus
	}{
		Shop:     config.GetConfig().Shop,
		Statuses: model.OrderStatuses,
	})
	if err != nil {
		log.Printf("Error executing main template: %v", err)
	}
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("failed to open browser: %v", err)
	}
}
