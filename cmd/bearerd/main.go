// Command bearerd serves the token issuance and current-identity API over a
// sqlite credential store.
package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	bearer "github.com/corvid-labs/go-bearer"
	"github.com/corvid-labs/go-bearer/store"
)

func main() {
	log.SetPrefix("[BEARERD] ")
	if err := run(); err != nil {
		log.Fatalf("exit: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := bearer.LoadEnvConfig()
	if err != nil {
		return err
	}

	dsn := envOr("AUTH_DATABASE_DSN", "file:bearerd.db?cache=shared&mode=rwc")
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	credentials := store.New(db)
	if err := credentials.CreateSchema(ctx); err != nil {
		return err
	}
	if os.Getenv("AUTH_SKIP_SEED") == "" {
		if err := credentials.Seed(ctx, store.DefaultSeedUsers()...); err != nil {
			return err
		}
	}

	auth := bearer.NewAuthenticator(credentials, cfg)
	controller := bearer.NewAuthController(auth, cfg)

	app := fiber.New(fiber.Config{
		AppName:               "bearerd",
		DisableStartupMessage: true,
	})
	bearer.RegisterAuthRoutes(app.Group("/api"), controller)

	addr := envOr("AUTH_LISTEN_ADDR", ":8080")
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()
	log.Printf("listening on %s", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return app.ShutdownWithTimeout(10 * time.Second)
}

func envOr(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}
