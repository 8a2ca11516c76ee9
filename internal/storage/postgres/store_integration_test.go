package postgres

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
)

// TestStoreIntegration exercises the slot table against a live database.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_STORAGE_INTEGRATION") != "true" {
		t.Skip("set RUN_STORAGE_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := NewStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer store.Close()

	prefix := fmt.Sprintf("apitest_%d:", time.Now().UnixNano())
	tokenKey, userKey := prefix+"ubu_auth_token", prefix+"ubu_auth_user"

	if err := store.Set(ctx, tokenKey, "first"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := store.Set(ctx, tokenKey, "second"); err != nil {
		t.Fatalf("overwrite token: %v", err)
	}
	if err := store.Set(ctx, userKey, `{"username":"ada"}`); err != nil {
		t.Fatalf("set user: %v", err)
	}

	got, ok, err := store.Get(ctx, tokenKey)
	if err != nil || !ok || got != "second" {
		t.Fatalf("get token = %q, %v, %v; want second", got, ok, err)
	}

	if err := store.Delete(ctx, tokenKey, userKey); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, err := store.Get(ctx, userKey); err != nil || ok {
		t.Fatalf("user slot still present: ok=%v err=%v", ok, err)
	}
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
