package loki

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPushEvent_SendsExpectedBody(t *testing.T) {
	var gotBody []byte
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err := PushEvent(context.Background(), srv.URL, ts, `{"eventType":"login_success"}`, map[string]string{"event_type": "login_success"})
	if err != nil {
		t.Fatalf("PushEvent: %v", err)
	}
	if gotPath != "/loki/api/v1/push" {
		t.Errorf("path = %q, want /loki/api/v1/push", gotPath)
	}
	var req PushRequest
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if len(req.Streams) != 1 {
		t.Fatalf("expected 1 stream, got %d", len(req.Streams))
	}
	stream := req.Streams[0]
	if stream.Stream["job"] != "accountd" {
		t.Errorf("job label = %q, want accountd", stream.Stream["job"])
	}
	if stream.Stream["event_type"] != "login_success" {
		t.Errorf("event_type label = %q", stream.Stream["event_type"])
	}
	if len(stream.Values) != 1 || len(stream.Values[0]) != 2 {
		t.Fatalf("unexpected values shape: %v", stream.Values)
	}
}

func TestPushEvent_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := PushEvent(context.Background(), srv.URL, time.Now(), "line", nil)
	if err == nil {
		t.Fatal("PushEvent should fail on non-2xx status")
	}
}

func TestPushEvent_EmptyBaseURL(t *testing.T) {
	if err := PushEvent(context.Background(), "", time.Now(), "line", nil); err == nil {
		t.Fatal("PushEvent with empty base URL should fail")
	}
}

func TestPushEventJSON_ExtractsLabels(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	raw := []byte(`{"userId":"u1","eventType":"device_change","source":"api","createdAt":"2026-01-02T03:04:05Z"}`)
	if err := PushEventJSON(context.Background(), srv.URL, raw); err != nil {
		t.Fatalf("PushEventJSON: %v", err)
	}
	var req PushRequest
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	labels := req.Streams[0].Stream
	if labels["user_id"] != "u1" || labels["event_type"] != "device_change" || labels["source"] != "api" {
		t.Errorf("labels = %v", labels)
	}
}

func TestPushEventJSON_InvalidJSONStillPushes(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := PushEventJSON(context.Background(), srv.URL, []byte("not json")); err != nil {
		t.Fatalf("PushEventJSON: %v", err)
	}
	if !hit {
		t.Error("raw line should still be pushed when parsing fails")
	}
}
