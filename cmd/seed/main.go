package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hongminglow/developers-api/internal/http/respond"
	"github.com/hongminglow/developers-api/internal/models/dto"
	"github.com/hongminglow/developers-api/internal/service"
)

const (
	defaultBaseURL   = "http://localhost:8080"
	defaultWaitLimit = 30 * time.Second
	developersPath   = "/api/v1/developers"
)

type seedConfig struct {
	BaseURL   string
	WaitLimit time.Duration
}

var sampleDevelopers = []dto.Developer{
	{FirstName: "John", LastName: "Doe", Email: "john.doe@mail.com", Specialty: "QA"},
	{FirstName: "Frank", LastName: "Jones", Email: "frank.jones@mail.com", Specialty: "Java"},
	{FirstName: "Mike", LastName: "Smith", Email: "mike.smith@mail.com", Specialty: "Go"},
}

func main() {
	log := logrus.New()
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.WaitLimit)
	defer cancel()

	if err := waitForServer(ctx, cfg.BaseURL); err != nil {
		log.WithError(err).Fatal("server is not ready")
	}

	created, err := seedDevelopers(ctx, cfg.BaseURL, sampleDevelopers)
	if err != nil {
		log.WithError(err).Fatal("failed to seed developers")
	}

	log.WithFields(logrus.Fields{
		"created":  created,
		"existing": len(sampleDevelopers) - created,
	}).Info("seed completed")
}

func loadConfig() seedConfig {
	cfg := seedConfig{
		BaseURL:   defaultBaseURL,
		WaitLimit: defaultWaitLimit,
	}

	if v, ok := lookupEnv("API_BASE_URL"); ok {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v, ok := lookupEnv("SEED_WAIT_LIMIT"); ok {
		d, err := time.ParseDuration(v)
		if err == nil && d > 0 {
			cfg.WaitLimit = d
		}
	}

	return cfg
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}

func waitForServer(ctx context.Context, baseURL string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	url := fmt.Sprintf("%s/health", strings.TrimRight(baseURL, "/"))
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

var errAlreadySeeded = errors.New("developer already exists")

// seedDevelopers creates each developer and reports how many were new.
func seedDevelopers(ctx context.Context, baseURL string, developers []dto.Developer) (int, error) {
	client := &http.Client{Timeout: 5 * time.Second}
	created := 0
	for _, d := range developers {
		err := createDeveloper(ctx, client, baseURL, d)
		switch {
		case err == nil:
			created++
		case errors.Is(err, errAlreadySeeded):
		default:
			return created, fmt.Errorf("create %s: %w", d.Email, err)
		}
	}
	return created, nil
}

func createDeveloper(ctx context.Context, client *http.Client, baseURL string, d dto.Developer) error {
	endpoint := strings.TrimRight(baseURL, "/") + developersPath
	buf, err := json.Marshal(d)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}
	if resp.StatusCode == http.StatusBadRequest {
		var failure respond.Envelope
		if err := json.NewDecoder(resp.Body).Decode(&failure); err != nil {
			return fmt.Errorf("unexpected create failure with status 400")
		}
		for _, item := range failure.Errors {
			if item.Code == service.CodeDuplicateEmail {
				return errAlreadySeeded
			}
		}
		return fmt.Errorf("create failed: %+v", failure.Errors)
	}

	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("create failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
}
