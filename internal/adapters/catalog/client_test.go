package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brewradar/brewradar/internal/core/domain"
)

func TestValues_OmitsDefaults(t *testing.T) {
	q := values(domain.BranchSearchParams{})
	if len(q) != 0 {
		t.Errorf("expected empty query for zero params, got %v", q)
	}
}

func TestValues_AttributeIDsCommaJoined(t *testing.T) {
	q := values(domain.BranchSearchParams{AttributeIDs: []int{3, 7, 12}})
	if got := q.Get("attribute_ids"); got != "3,7,12" {
		t.Errorf("expected 3,7,12, got %q", got)
	}
}

func TestValues_CoordinatesOnlyForDistanceSort(t *testing.T) {
	lat, lon := 43.26, -2.93

	q := values(domain.BranchSearchParams{Lat: &lat, Lon: &lon, SortBy: "rating"})
	if q.Get("lat") != "" {
		t.Errorf("lat must be omitted for rating sort, got %q", q.Get("lat"))
	}

	q = values(domain.BranchSearchParams{Lat: &lat, Lon: &lon, SortBy: "distance"})
	if q.Get("lat") == "" || q.Get("lon") == "" {
		t.Error("expected coordinates for distance sort")
	}
}

func TestSearchBranches_DecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/branches" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "espresso" {
			t.Errorf("expected query=espresso, got %q", got)
		}
		w.Write([]byte(`{"branches":[{"id":"b1","name":"Café Sol","store_name":"Sol Roasters","latitude":43.26,"longitude":-2.93,"rating":4.5,"is_open":true,"tags":["wifi"]}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.SearchBranches(context.Background(), domain.BranchSearchParams{Query: "espresso"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "b1" || got[0].StoreName != "Sol Roasters" {
		t.Errorf("unexpected result: %+v", got)
	}
	if got[0].Location.Lat != 43.26 {
		t.Errorf("location not mapped: %+v", got[0].Location)
	}
}

func TestSearchBranches_MalformedEnvelopeYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	got, err := New(srv.URL).SearchBranches(context.Background(), domain.BranchSearchParams{})
	if err != nil {
		t.Fatalf("missing envelope field must not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}

func TestSearchBranches_HTTPErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).SearchBranches(context.Background(), domain.BranchSearchParams{})
	if err == nil {
		t.Fatal("expected error for HTTP 502")
	}
}

func TestListStores_DecodesNestedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/stores" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"stores":{"stores":[{"id":"s1","slug":"sol","name":"Sol Roasters","status":"APPROVED"}]}}`))
	}))
	defer srv.Close()

	got, err := New(srv.URL).ListStores(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "sol" || got[0].Status != domain.StoreApproved {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestStampsByPage_SwallowsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	page, err := New(srv.URL).StampsByPage(context.Background(), "u1", 2)
	if err != nil {
		t.Fatalf("stamp page fetch must not error: %v", err)
	}
	if page.PageID != 2 || page.Stamps == nil || len(page.Stamps) != 0 {
		t.Errorf("expected empty page 2, got %+v", page)
	}
}

func TestStampsByPage_MalformedBodyYieldsEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{`))
	}))
	defer srv.Close()

	page, err := New(srv.URL).StampsByPage(context.Background(), "u1", 1)
	if err != nil || len(page.Stamps) != 0 {
		t.Errorf("expected empty page without error, got %+v err=%v", page, err)
	}
}
