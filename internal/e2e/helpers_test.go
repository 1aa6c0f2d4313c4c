package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"carprice/internal/httpapi"
	"carprice/internal/predictor"
	"carprice/internal/trainer"
)

const sampleData = "../../data/carros.csv"

// trainTemp trains on the bundled sample data into a temp artifact and returns its path.
func trainTemp(t *testing.T, name string) string {
	t.Helper()
	out := filepath.Join(t.TempDir(), name)
	if _, err := trainer.Run(sampleData, out, zerolog.Nop()); err != nil {
		t.Fatalf("train: %v", err)
	}
	return out
}

// newServerForArtifact loads the artifact at path the way carpriced does and serves it.
func newServerForArtifact(t *testing.T, path string) (*httptest.Server, *predictor.Predictor) {
	t.Helper()
	pred, _ := predictor.Open(path, nil)
	srv := httptest.NewServer(httpapi.NewMux(pred))
	t.Cleanup(srv.Close)
	return srv, pred
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
