package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SageDevelopmentCode/dine-web/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	return config.Config{
		Port:             "0",
		DBDriver:         config.DriverSQLite,
		DBPath:           filepath.Join(t.TempDir(), "data", "dine.db"),
		LogLevel:         "info",
		LogFormat:        "json",
		DefaultsCacheTTL: time.Minute,
	}
}

func seedDemoProfile(t *testing.T, cfg config.Config) string {
	t.Helper()

	var out bytes.Buffer
	if err := RunSeedCommand(context.Background(), cfg, nil, &out, SeedOptions{Demo: true, DisplayName: "Sam Lee"}); err != nil {
		t.Fatalf("RunSeedCommand returned error: %v", err)
	}
	for _, line := range strings.Split(out.String(), "\n") {
		if slug, ok := strings.CutPrefix(line, "Demo profile: "); ok {
			return slug
		}
	}
	t.Fatalf("seed output %q has no demo slug", out.String())
	return ""
}

func TestRunSeedCommandIsRepeatable(t *testing.T) {
	cfg := testConfig(t)

	var first bytes.Buffer
	if err := RunSeedCommand(context.Background(), cfg, nil, &first, SeedOptions{}); err != nil {
		t.Fatalf("first seed returned error: %v", err)
	}
	if strings.Contains(first.String(), ": 0 new rows") {
		t.Fatalf("expected first seed to insert rows, got %q", first.String())
	}

	var second bytes.Buffer
	if err := RunSeedCommand(context.Background(), cfg, nil, &second, SeedOptions{}); err != nil {
		t.Fatalf("second seed returned error: %v", err)
	}
	if strings.TrimSpace(second.String()) != "Reference data applied: 0 new rows" {
		t.Fatalf("expected second seed to be a no-op, got %q", second.String())
	}
}

func TestRunProfileCommandPrintsComposite(t *testing.T) {
	cfg := testConfig(t)
	slug := seedDemoProfile(t, cfg)
	if !strings.HasPrefix(slug, "sam-lee-") {
		t.Fatalf("expected slug derived from display name, got %q", slug)
	}

	var out bytes.Buffer
	if err := RunProfileCommand(context.Background(), cfg, nil, &out, slug, ""); err != nil {
		t.Fatalf("RunProfileCommand returned error: %v", err)
	}

	payload := map[string]any{}
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("decode profile output: %v", err)
	}
	identity, _ := payload["identity"].(map[string]any)
	if identity["slug"] != slug {
		t.Fatalf("expected identity slug %q, got %v", slug, identity["slug"])
	}
	if !strings.Contains(out.String(), "\n  \"allergy\"") {
		t.Fatal("expected indented JSON output")
	}
}

func TestRunProfileCommandSingleDomain(t *testing.T) {
	cfg := testConfig(t)
	slug := seedDemoProfile(t, cfg)

	var out bytes.Buffer
	if err := RunProfileCommand(context.Background(), cfg, nil, &out, slug, "emergency"); err != nil {
		t.Fatalf("RunProfileCommand returned error: %v", err)
	}

	payload := map[string]any{}
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("decode domain output: %v", err)
	}
	if _, ok := payload["contacts"]; !ok {
		t.Fatalf("expected emergency card payload, got %v", payload)
	}
	if _, ok := payload["identity"]; ok {
		t.Fatal("expected single domain output without identity")
	}
}

func TestRunProfileCommandErrors(t *testing.T) {
	cfg := testConfig(t)
	slug := seedDemoProfile(t, cfg)

	tests := []struct {
		name   string
		slug   string
		domain string
		want   string
	}{
		{name: "empty slug", slug: "  ", want: "slug is required"},
		{name: "unknown slug", slug: "nobody-here", want: "profile nobody-here not found"},
		{name: "unknown domain", slug: slug, domain: "calendar", want: `unknown domain "calendar"`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var out bytes.Buffer
			err := RunProfileCommand(context.Background(), cfg, nil, &out, test.slug, test.domain)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Fatalf("expected error containing %q, got %v", test.want, err)
			}
			if out.Len() != 0 {
				t.Fatalf("expected no output on error, got %q", out.String())
			}
		})
	}
}

func TestServeListenerShutsDownOnCancel(t *testing.T) {
	cfg := testConfig(t)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- serveListener(ctx, cfg, nil, listener)
	}()

	client := &http.Client{
		Timeout:   time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
	url := "http://" + listener.Addr().String() + "/healthz"

	var status int
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		response, err := client.Get(url)
		if err == nil {
			status = response.StatusCode
			_ = response.Body.Close()
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if status != http.StatusOK {
		t.Fatalf("expected healthz status 200, got %d", status)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serveListener returned error: %v", err)
		}
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestRunServeCommandRejectsBadPort(t *testing.T) {
	cfg := testConfig(t)
	cfg.Port = "not-a-port"

	if err := RunServeCommand(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected listen error for invalid port")
	}
}
