package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hongminglow/developers-api/internal/config"
	"github.com/hongminglow/developers-api/internal/logging"
	"github.com/hongminglow/developers-api/internal/server"
	"github.com/hongminglow/developers-api/internal/service"
	"github.com/hongminglow/developers-api/internal/storage/memory"
)

func TestSeedDevelopersIsIdempotent(t *testing.T) {
	cfg := config.Config{Port: "0", StoreDriver: config.DriverMemory, CORSOrigins: []string{"*"}, ShutdownTimeout: time.Second}
	svc := service.NewDeveloperService(memory.New(), logging.Discard())
	ts := httptest.NewServer(server.New(cfg, svc, logging.Discard()).Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := waitForServer(ctx, ts.URL); err != nil {
		t.Fatalf("wait: %v", err)
	}

	created, err := seedDevelopers(ctx, ts.URL, sampleDevelopers)
	if err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if created != len(sampleDevelopers) {
		t.Fatalf("first seed: want %d created got %d", len(sampleDevelopers), created)
	}

	created, err = seedDevelopers(ctx, ts.URL, sampleDevelopers)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if created != 0 {
		t.Fatalf("second seed: want 0 created got %d", created)
	}

	all, err := svc.GetAll(ctx)
	if err != nil || len(all) != len(sampleDevelopers) {
		t.Fatalf("stored developers: %d err %v", len(all), err)
	}
}

func TestSeedDevelopersReportsServerErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	if _, err := seedDevelopers(context.Background(), ts.URL, sampleDevelopers); err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api:9090/")
	t.Setenv("SEED_WAIT_LIMIT", "5s")

	cfg := loadConfig()
	if cfg.BaseURL != "http://api:9090" || cfg.WaitLimit != 5*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
