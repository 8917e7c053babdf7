package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/listings-api/blobstore"
	"github.com/yourorg/listings-api/geocode"
	"github.com/yourorg/listings-api/internal/auth"
	"github.com/yourorg/listings-api/internal/events"
	"github.com/yourorg/listings-api/internal/ingest"
	"github.com/yourorg/listings-api/internal/store"
)

var testSecret = []byte("handler-test-secret")

// memStore backs handler tests with just enough persistence.
type memStore struct {
	locations  map[string]*store.Location
	properties map[string]*store.Property
	projects   map[string]*store.Project
	builders   []store.Builder
}

func newMemStore() *memStore {
	return &memStore{
		locations:  map[string]*store.Location{},
		properties: map[string]*store.Property{},
		projects:   map[string]*store.Project{},
		builders:   []store.Builder{{ID: "b-1", Name: "Acme Homes"}},
	}
}

func (m *memStore) FindLocationWithin(_ context.Context, minLat, maxLat, minLng, maxLng float64) (*store.Location, error) {
	for _, loc := range m.locations {
		if loc.Latitude >= minLat && loc.Latitude <= maxLat && loc.Longitude >= minLng && loc.Longitude <= maxLng {
			return loc, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) CreateLocation(_ context.Context, loc *store.Location) error {
	m.locations[loc.ID] = loc
	return nil
}

func (m *memStore) BuilderExists(_ context.Context, id string) (bool, error) {
	for _, b := range m.builders {
		if b.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListBuilders(_ context.Context) ([]store.Builder, error) {
	return m.builders, nil
}

func (m *memStore) GetPropertyByID(_ context.Context, id string) (*store.Property, error) {
	p, ok := m.properties[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) CreateProperty(_ context.Context, p *store.Property) error {
	cp := *p
	m.properties[p.ID] = &cp
	return nil
}

func (m *memStore) UpdateProperty(_ context.Context, p *store.Property) error {
	if _, ok := m.properties[p.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *p
	m.properties[p.ID] = &cp
	return nil
}

func (m *memStore) SetPropertyArchived(_ context.Context, id string, archived bool) error {
	p, ok := m.properties[id]
	if !ok {
		return store.ErrNotFound
	}
	p.IsArchived = archived
	return nil
}

func (m *memStore) SetPropertySold(_ context.Context, id string, sold bool) error {
	p, ok := m.properties[id]
	if !ok {
		return store.ErrNotFound
	}
	p.IsSold = sold
	return nil
}

func (m *memStore) GetProjectByID(_ context.Context, id string) (*store.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) CreateProject(_ context.Context, p *store.Project) error {
	cp := *p
	m.projects[p.ID] = &cp
	return nil
}

func (m *memStore) UpdateProject(_ context.Context, p *store.Project) error {
	if _, ok := m.projects[p.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *p
	m.projects[p.ID] = &cp
	return nil
}

func (m *memStore) SetProjectArchived(_ context.Context, id string, archived bool) error {
	p, ok := m.projects[id]
	if !ok {
		return store.ErrNotFound
	}
	p.IsArchived = archived
	return nil
}

func (m *memStore) SetProjectSold(_ context.Context, id string, sold bool) error {
	p, ok := m.projects[id]
	if !ok {
		return store.ErrNotFound
	}
	p.IsSold = sold
	return nil
}

type stubGeocoder struct{}

func (stubGeocoder) Geocode(_ context.Context, address string) (*geocode.Result, error) {
	if address == "nowhere" {
		return nil, nil
	}
	return &geocode.Result{City: "Bengaluru", Country: "India", Latitude: 12.9, Longitude: 77.6}, nil
}

type stubUploader struct{ n int }

func (u *stubUploader) UploadOne(_ context.Context, in blobstore.UploadInput) (string, error) {
	u.n++
	return fmt.Sprintf("https://cdn.test/%s/%d", in.Category, u.n), nil
}

func (u *stubUploader) UploadMany(_ context.Context, _, category string, imgs []string) ([]string, error) {
	out := make([]string, len(imgs))
	for i := range imgs {
		u.n++
		out[i] = fmt.Sprintf("https://cdn.test/%s/%d", category, u.n)
	}
	return out, nil
}

func newTestRouter(t *testing.T) (http.Handler, *memStore, events.Publisher) {
	st := newMemStore()
	pipe := &ingest.Pipeline{Store: st, Geocoder: stubGeocoder{}, Uploader: &stubUploader{}}
	respond := Responder{}
	pub := events.NewInMemory(16)

	r := chi.NewRouter()
	r.MethodNotAllowed(respond.MethodNotAllowed)
	r.NotFound(respond.NotFound)
	mw := auth.Middleware(testSecret)
	RegisterProperties(r, PropertyDeps{Pipeline: pipe, Auth: mw, Events: pub, Respond: respond})
	RegisterProjects(r, ProjectDeps{Pipeline: pipe, Auth: mw, Events: pub, Respond: respond})
	RegisterBuilders(r, BuilderDeps{Store: st, Respond: respond})
	return r, st, pub
}

func bearer(t *testing.T, userID string) string {
	token, err := auth.GenerateToken(testSecret, userID, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createListing(t *testing.T, h http.Handler, path, token string) string {
	rec := doJSON(t, h, http.MethodPost, path, token, map[string]any{
		"name":            "Skyline Towers",
		"description":     "3BHK apartments",
		"builderId":       "b-1",
		"locationAddress": "1 MG Road",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	var entity struct {
		ID string `json:"id"`
	}
	key := "property"
	if _, ok := out["project"]; ok {
		key = "project"
	}
	require.NoError(t, json.Unmarshal(out[key], &entity))
	require.NotEmpty(t, entity.ID)
	return entity.ID
}

func TestCreateProperty_RequiresAuth(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/properties", "", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}

func TestCreateProperty_Created(t *testing.T) {
	h, st, _ := newTestRouter(t)

	id := createListing(t, h, "/v1/properties", bearer(t, "user-1"))
	require.Contains(t, st.properties, id)
	assert.Equal(t, "user-1", st.properties[id].PostedByUserID)
}

func TestCreateProperty_InvalidBody(t *testing.T) {
	h, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/properties", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", bearer(t, "user-1"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid request body"}`, rec.Body.String())
}

func TestCreateProperty_ValidationErrorPassesThrough(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/properties", bearer(t, "user-1"), map[string]any{"name": "only a name"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Missing required fields"}`, rec.Body.String())
}

func TestCreateProperty_UngeocodableAddress(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/properties", bearer(t, "user-1"), map[string]any{
		"name": "x", "description": "y", "builderId": "b-1", "locationAddress": "nowhere",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Could not geocode the provided address"}`, rec.Body.String())
}

func TestGetProperty_PublicAndNotFound(t *testing.T) {
	h, _, _ := newTestRouter(t)
	id := createListing(t, h, "/v1/properties", bearer(t, "user-1"))

	rec := doJSON(t, h, http.MethodGet, "/v1/properties/"+id, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Contains(t, out, "property")

	rec = doJSON(t, h, http.MethodGet, "/v1/properties/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Property not found"}`, rec.Body.String())
}

func TestUpdateProperty_Forbidden(t *testing.T) {
	h, _, _ := newTestRouter(t)
	id := createListing(t, h, "/v1/properties", bearer(t, "owner"))

	rec := doJSON(t, h, http.MethodPut, "/v1/properties/"+id, bearer(t, "intruder"), map[string]any{
		"name": "Hijacked", "description": "x", "builderId": "b-1",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"You are not authorized to update this property"}`, rec.Body.String())
}

func TestUpdateProperty_OK(t *testing.T) {
	h, st, _ := newTestRouter(t)
	id := createListing(t, h, "/v1/properties", bearer(t, "owner"))

	rec := doJSON(t, h, http.MethodPut, "/v1/properties/"+id, bearer(t, "owner"), map[string]any{
		"name": "Renamed", "description": "Updated copy", "builderId": "b-1",
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Renamed", st.properties[id].Name)
}

func TestArchiveRestoreSold(t *testing.T) {
	h, st, _ := newTestRouter(t)
	id := createListing(t, h, "/v1/properties", bearer(t, "owner"))
	token := bearer(t, "owner")

	rec := doJSON(t, h, http.MethodPost, "/v1/properties/"+id+"/archive", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, st.properties[id].IsArchived)

	rec = doJSON(t, h, http.MethodPost, "/v1/properties/"+id+"/restore", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, st.properties[id].IsArchived)

	rec = doJSON(t, h, http.MethodPost, "/v1/properties/"+id+"/sold", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, st.properties[id].IsSold)
}

func TestMethodNotAllowed(t *testing.T) {
	h, _, _ := newTestRouter(t)
	id := createListing(t, h, "/v1/properties", bearer(t, "owner"))

	rec := doJSON(t, h, http.MethodDelete, "/v1/properties/"+id, bearer(t, "owner"), nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"message":"Method not allowed"}`, rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/v1/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Not found"}`, rec.Body.String())
}

func TestCreateProject_AndGet(t *testing.T) {
	h, st, _ := newTestRouter(t)

	id := createListing(t, h, "/v1/projects", bearer(t, "user-1"))
	require.Contains(t, st.projects, id)

	rec := doJSON(t, h, http.MethodGet, "/v1/projects/"+id, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListBuilders(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/v1/builders", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Message  string          `json:"message"`
		Count    int             `json:"count"`
		Builders []store.Builder `json:"builders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, "Acme Homes", out.Builders[0].Name)
}

func TestCreatePublishesInvalidationEvent(t *testing.T) {
	h, _, pub := newTestRouter(t)

	id := createListing(t, h, "/v1/properties", bearer(t, "user-1"))

	select {
	case evt := <-pub.SubscribeListingUpdated():
		assert.Equal(t, KindProperty, evt.Kind)
		assert.Equal(t, id, evt.ID)
	default:
		t.Fatal("no event published")
	}
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "listing:property:p-1", CacheKey(KindProperty, "p-1"))
	assert.Equal(t, "listing:project:x", CacheKey(KindProject, "x"))
}
