package watch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	store := NewStore()
	store.SetRecords(SourceONU, []Record{
		{Source: SourceONU, Name: "John Doe", Ref: "QDi.001", Program: "Al-Qaida"},
	})
	status := &StatusLog{}
	status.Add("Listas cargadas: 1 registros totales")
	return &Server{Store: store, Status: status, DataDir: dir, Log: zerolog.Nop()}, dir
}

func TestServerSearch(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/search?name=John+Doe&mode=strict")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("CORS header = %q", got)
	}
	var out SearchOutcome
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Total != 1 || len(out.Results) != 1 || out.Results[0].Score != 100 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestServerSearchDefaultsToSmart(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	// Token containment only matches under smart scoring.
	resp, err := http.Get(ts.URL + "/api/search?name=Doe")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var out SearchOutcome
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Total != 1 || out.Results[0].Score != 95 {
		t.Fatalf("smart default not applied: %+v", out)
	}
}

func TestServerSearchEmptyQuery(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/search")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != ErrEmptyQuery.Error() {
		t.Fatalf("unexpected error body: %+v", body)
	}
}

func TestServerSearchBadMode(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/search?name=x&mode=exact")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestServerStatus(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/status")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var body struct {
		Counts   map[Source]int  `json:"counts"`
		Loaded   map[Source]bool `json:"loaded"`
		Total    int             `json:"total"`
		Messages []string        `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 1 || body.Counts[SourceONU] != 1 || !body.Loaded[SourceONU] {
		t.Fatalf("unexpected status: %+v", body)
	}
	if body.Loaded[SourceOFAC] || body.Counts[SourceUE] != 0 {
		t.Fatalf("unloaded sources misreported: %+v", body)
	}
	if len(body.Messages) != 1 {
		t.Fatalf("status messages missing: %+v", body)
	}
}

func TestServerData(t *testing.T) {
	srv, dir := newTestServer(t)
	if err := os.WriteFile(filepath.Join(dir, "list.xml"), []byte("<x/>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/data/list.xml")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/xml" {
		t.Fatalf("Content-Type = %q", ct)
	}

	resp, err = http.Get(ts.URL + "/data/missing.csv")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing file status = %d, want 404", resp.StatusCode)
	}
}
