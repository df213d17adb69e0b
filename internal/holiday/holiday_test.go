package holiday

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetch_ParsesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"2025-01-01":"元日","2025-05-05":"こどもの日"}`))
	}))
	defer srv.Close()

	days := NewClient(srv.URL).Fetch(context.Background())
	if days["2025-01-01"] != "元日" || days["2025-05-05"] != "こどもの日" {
		t.Fatalf("unexpected feed: %v", days)
	}
}

func TestFetch_FailuresCollapseToEmpty(t *testing.T) {
	// Non-200.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	if days := NewClient(srv.URL).Fetch(context.Background()); len(days) != 0 {
		t.Fatalf("non-200 must yield empty map: %v", days)
	}
	srv.Close()

	// Connection refused (server closed above).
	if days := NewClient(srv.URL).Fetch(context.Background()); len(days) != 0 {
		t.Fatalf("transport failure must yield empty map: %v", days)
	}

	// Garbage body.
	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv2.Close()
	if days := NewClient(srv2.URL).Fetch(context.Background()); len(days) != 0 {
		t.Fatalf("bad body must yield empty map: %v", days)
	}
}
