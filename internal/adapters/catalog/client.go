// Package catalog is the HTTP client for the partner branch catalog.
// Each endpoint keeps its own response adapter: the branches endpoint nests
// its payload as {"branches": [...]} while the stores endpoint uses
// {"stores": {"stores": [...]}}. The shapes are a backend reality, not a
// client choice, so there is one decoder per endpoint instead of a generic
// unwrapper guessing.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/brewradar/brewradar/internal/core/domain"
)

// Client fetches branch and store data from the partner catalog API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a catalog client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// values encodes params for the wire, omitting fields at their defaults so
// the request stays minimal. Coordinates go out only when present and a
// distance-relevant sort is requested.
func values(p domain.BranchSearchParams) url.Values {
	q := url.Values{}

	if p.Query != "" {
		q.Set("query", p.Query)
	}
	if p.MinRating > 0 {
		q.Set("min_rating", strconv.FormatFloat(p.MinRating, 'f', -1, 64))
	}
	if p.OpenOnly {
		q.Set("open_only", "true")
	}
	if p.SortBy != "" {
		q.Set("sort_by", p.SortBy)
	}
	if p.Lat != nil && p.Lon != nil && (p.SortBy == "distance" || p.SortBy == "") {
		q.Set("lat", strconv.FormatFloat(*p.Lat, 'f', -1, 64))
		q.Set("lon", strconv.FormatFloat(*p.Lon, 'f', -1, 64))
	}
	if len(p.AttributeIDs) > 0 {
		ids := make([]string, len(p.AttributeIDs))
		for i, id := range p.AttributeIDs {
			ids[i] = strconv.Itoa(id)
		}
		q.Set("attribute_ids", strings.Join(ids, ","))
	}
	return q
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, path)
	}

	return io.ReadAll(resp.Body)
}

// rawBranch is the catalog's branch record.
type rawBranch struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	StoreName string   `json:"store_name"`
	Address   string   `json:"address"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Rating    float64  `json:"rating"`
	IsOpen    bool     `json:"is_open"`
	Image     string   `json:"image"`
	Tags      []string `json:"tags"`
}

// branchesEnvelope decodes {"branches": [...]}. The field is RawMessage so a
// missing or wrong-shaped value adapts to an empty list instead of failing
// the whole response.
type branchesEnvelope struct {
	Branches json.RawMessage `json:"branches"`
}

// storesEnvelope decodes the doubly nested {"stores": {"stores": [...]}}.
type storesEnvelope struct {
	Stores struct {
		Stores json.RawMessage `json:"stores"`
	} `json:"stores"`
}

// decodeList unmarshals a raw array field, treating null, absent, or
// non-array values as empty.
func decodeList[T any](raw json.RawMessage) []T {
	if len(raw) == 0 {
		return nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

// SearchBranches queries the branches endpoint and adapts the response into
// view entities. Transport and HTTP errors propagate to the caller; shape
// problems in an otherwise successful response do not.
func (c *Client) SearchBranches(ctx context.Context, params domain.BranchSearchParams) ([]domain.BranchView, error) {
	body, err := c.get(ctx, "/v2/branches", values(params))
	if err != nil {
		return nil, err
	}

	var env branchesEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return []domain.BranchView{}, nil
	}

	raws := decodeList[rawBranch](env.Branches)
	views := make([]domain.BranchView, 0, len(raws))
	for _, r := range raws {
		views = append(views, domain.BranchView{
			ID:        r.ID,
			Name:      r.Name,
			StoreName: r.StoreName,
			Address:   r.Address,
			Location:  domain.GeoPoint{Lat: r.Latitude, Lon: r.Longitude},
			Rating:    r.Rating,
			IsOpen:    r.IsOpen,
			ImageURL:  r.Image,
			Tags:      r.Tags,
		})
	}
	return views, nil
}

// rawStore is the catalog's store record.
type rawStore struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
}

// ListStores queries the stores endpoint, which nests its payload twice.
// Errors propagate like SearchBranches.
func (c *Client) ListStores(ctx context.Context) ([]domain.Store, error) {
	body, err := c.get(ctx, "/v1/stores", nil)
	if err != nil {
		return nil, err
	}

	var env storesEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return []domain.Store{}, nil
	}

	raws := decodeList[rawStore](env.Stores.Stores)
	stores := make([]domain.Store, 0, len(raws))
	for _, r := range raws {
		stores = append(stores, domain.Store{
			ID:          r.ID,
			Slug:        r.Slug,
			Name:        r.Name,
			Status:      domain.StoreStatus(r.Status),
			Description: r.Description,
			LogoURL:     r.Logo,
		})
	}
	return stores, nil
}

// StampsByPage fetches one album page. Unlike the other endpoints this one
// swallows fetch errors and returns an empty-but-valid page: the album UI
// renders empty slots rather than an error state. Keep this asymmetry.
func (c *Client) StampsByPage(ctx context.Context, userID string, pageID int) (*domain.StampPage, error) {
	q := url.Values{}
	q.Set("user_id", userID)
	q.Set("page", strconv.Itoa(pageID))

	body, err := c.get(ctx, "/v1/stamps", q)
	if err != nil {
		return &domain.StampPage{PageID: pageID, Stamps: []domain.Stamp{}}, nil
	}

	var page domain.StampPage
	if err := json.Unmarshal(body, &page); err != nil {
		return &domain.StampPage{PageID: pageID, Stamps: []domain.Stamp{}}, nil
	}
	if page.Stamps == nil {
		page.Stamps = []domain.Stamp{}
	}
	page.PageID = pageID
	return &page, nil
}
