package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/veleth/stagehand/internal/api"
	"github.com/veleth/stagehand/internal/contentservice"
	"github.com/veleth/stagehand/internal/document"
	"github.com/veleth/stagehand/internal/store"
	"github.com/veleth/stagehand/internal/testutil"
)

func newTestAPI(t *testing.T, authEnabled bool, token string) (*httptest.Server, *store.Store, *store.Store) {
	t.Helper()
	_, gear, live, media := testutil.TestStores(t)
	svc := contentservice.NewService(gear, live, media)
	srv := httptest.NewServer(api.NewRouter(svc, authEnabled, token, nil))
	t.Cleanup(srv.Close)
	return srv, gear, live
}

func getJSON(t *testing.T, url string, target any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func seedGear(t *testing.T, gear *store.Store) {
	t.Helper()
	_, err := gear.Create(document.Fields{
		{Name: "name", Value: "BD-2 Blues Driver"},
		{Name: "manufacturer", Value: "BOSS"},
		{Name: "category", Value: "Pedal"},
		{Name: "technology", Value: "Analog"},
	}, "")
	if err != nil {
		t.Fatal(err)
	}
}

func TestListRecords(t *testing.T) {
	srv, gear, _ := newTestAPI(t, false, "")
	seedGear(t, gear)

	var result contentservice.ListResult
	if code := getJSON(t, srv.URL+"/records/gear", &result); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if len(result.Records) != 1 {
		t.Fatalf("records = %v", result.Records)
	}
	rec := result.Records[0]
	if rec.Slug != "boss-bd-2-blues-driver" || rec.Kind != "gear" {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.Fields["manufacturer"] != "BOSS" {
		t.Errorf("fields = %v", rec.Fields)
	}
	if len(rec.Order) == 0 || rec.Order[0] != "name" {
		t.Errorf("field order not preserved: %v", rec.Order)
	}
}

func TestListRecords_Filters(t *testing.T) {
	srv, gear, _ := newTestAPI(t, false, "")
	seedGear(t, gear)

	var result contentservice.ListResult
	if code := getJSON(t, srv.URL+"/records/gear?category=Synth", &result); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if len(result.Records) != 0 {
		t.Errorf("filter should exclude the pedal: %v", result.Records)
	}
}

func TestListRecords_UnknownKind(t *testing.T) {
	srv, _, _ := newTestAPI(t, false, "")

	if code := getJSON(t, srv.URL+"/records/widgets", nil); code != http.StatusNotFound {
		t.Errorf("status %d, want 404", code)
	}
}

func TestGetRecord(t *testing.T) {
	srv, _, live := newTestAPI(t, false, "")
	if _, err := live.Create(document.Fields{
		{Name: "title", Value: "Noise Space XV"},
		{Name: "date", Value: "2025-10-11"},
		{Name: "venue", Value: "Klub Mózg"},
		{Name: "location", Value: "Bydgoszcz"},
	}, "An evening of improvised noise."); err != nil {
		t.Fatal(err)
	}

	var rec contentservice.RecordDetail
	code := getJSON(t, srv.URL+"/records/live/2025-10-11-noise-space-xv", &rec)
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if rec.Body != "An evening of improvised noise." {
		t.Errorf("body = %q", rec.Body)
	}
	if rec.Fields["draft"] != false {
		t.Errorf("draft default missing: %v", rec.Fields)
	}
}

func TestGetRecord_NotFound(t *testing.T) {
	srv, _, _ := newTestAPI(t, false, "")

	if code := getJSON(t, srv.URL+"/records/gear/no-such-slug", nil); code != http.StatusNotFound {
		t.Errorf("status %d, want 404", code)
	}
}

func TestSearchRecords(t *testing.T) {
	srv, gear, _ := newTestAPI(t, false, "")
	seedGear(t, gear)

	var result contentservice.ListResult
	if code := getJSON(t, srv.URL+"/records/gear/search?q=blues", &result); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if len(result.Records) != 1 {
		t.Errorf("search results = %v", result.Records)
	}

	if code := getJSON(t, srv.URL+"/records/gear/search", nil); code != http.StatusBadRequest {
		t.Errorf("missing q: status %d, want 400", code)
	}
}

func TestAuth(t *testing.T) {
	srv, gear, _ := newTestAPI(t, true, "secret-token")
	seedGear(t, gear)

	// No token.
	if code := getJSON(t, srv.URL+"/records/gear", nil); code != http.StatusUnauthorized {
		t.Errorf("unauthenticated: status %d, want 401", code)
	}

	// Wrong token.
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/records/gear", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong token: status %d, want 401", resp.StatusCode)
	}

	// Valid token.
	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/records/gear", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("valid token: status %d, want 200", resp.StatusCode)
	}
}
