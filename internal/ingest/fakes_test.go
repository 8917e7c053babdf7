package ingest

import (
	"context"
	"fmt"

	"github.com/yourorg/listings-api/blobstore"
	"github.com/yourorg/listings-api/geocode"
	"github.com/yourorg/listings-api/internal/store"
)

// fakeStore is an in-memory Store with per-method error overrides.
type fakeStore struct {
	locations  map[string]*store.Location
	builders   map[string]bool
	properties map[string]*store.Property
	projects   map[string]*store.Project

	createPropertyErr error
	updatePropertyErr error
	createProjectErr  error
	updateProjectErr  error

	updatePropertyCalls int
	updateProjectCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		locations:  map[string]*store.Location{},
		builders:   map[string]bool{},
		properties: map[string]*store.Property{},
		projects:   map[string]*store.Project{},
	}
}

func (f *fakeStore) FindLocationWithin(_ context.Context, minLat, maxLat, minLng, maxLng float64) (*store.Location, error) {
	for _, loc := range f.locations {
		if loc.Latitude >= minLat && loc.Latitude <= maxLat && loc.Longitude >= minLng && loc.Longitude <= maxLng {
			return loc, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) CreateLocation(_ context.Context, loc *store.Location) error {
	cp := *loc
	f.locations[loc.ID] = &cp
	return nil
}

func (f *fakeStore) BuilderExists(_ context.Context, id string) (bool, error) {
	return f.builders[id], nil
}

func (f *fakeStore) GetPropertyByID(_ context.Context, id string) (*store.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) CreateProperty(_ context.Context, p *store.Property) error {
	if f.createPropertyErr != nil {
		return f.createPropertyErr
	}
	cp := *p
	f.properties[p.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateProperty(_ context.Context, p *store.Property) error {
	f.updatePropertyCalls++
	if f.updatePropertyErr != nil {
		return f.updatePropertyErr
	}
	if _, ok := f.properties[p.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *p
	f.properties[p.ID] = &cp
	return nil
}

func (f *fakeStore) SetPropertyArchived(_ context.Context, id string, archived bool) error {
	p, ok := f.properties[id]
	if !ok {
		return store.ErrNotFound
	}
	p.IsArchived = archived
	return nil
}

func (f *fakeStore) SetPropertySold(_ context.Context, id string, sold bool) error {
	p, ok := f.properties[id]
	if !ok {
		return store.ErrNotFound
	}
	p.IsSold = sold
	return nil
}

func (f *fakeStore) GetProjectByID(_ context.Context, id string) (*store.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) CreateProject(_ context.Context, p *store.Project) error {
	if f.createProjectErr != nil {
		return f.createProjectErr
	}
	cp := *p
	f.projects[p.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateProject(_ context.Context, p *store.Project) error {
	f.updateProjectCalls++
	if f.updateProjectErr != nil {
		return f.updateProjectErr
	}
	if _, ok := f.projects[p.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *p
	f.projects[p.ID] = &cp
	return nil
}

func (f *fakeStore) SetProjectArchived(_ context.Context, id string, archived bool) error {
	p, ok := f.projects[id]
	if !ok {
		return store.ErrNotFound
	}
	p.IsArchived = archived
	return nil
}

func (f *fakeStore) SetProjectSold(_ context.Context, id string, sold bool) error {
	p, ok := f.projects[id]
	if !ok {
		return store.ErrNotFound
	}
	p.IsSold = sold
	return nil
}

// fakeGeocoder returns a canned result per address.
type fakeGeocoder struct {
	results map[string]*geocode.Result
	err     error
	calls   []string
}

func (f *fakeGeocoder) Geocode(_ context.Context, address string) (*geocode.Result, error) {
	f.calls = append(f.calls, address)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[address], nil
}

// fakeUploader mints deterministic URLs and records every batch it received.
type fakeUploader struct {
	err     error
	singles []blobstore.UploadInput
	batches map[string][]string // category -> last batch
	seq     int
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{batches: map[string][]string{}}
}

func (f *fakeUploader) UploadOne(_ context.Context, in blobstore.UploadInput) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.singles = append(f.singles, in)
	f.seq++
	return fmt.Sprintf("https://cdn.test/%s/%d", in.Category, f.seq), nil
}

func (f *fakeUploader) UploadMany(_ context.Context, entityName, category string, base64Images []string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batches[category] = append([]string(nil), base64Images...)
	out := make([]string, len(base64Images))
	for i := range base64Images {
		f.seq++
		out[i] = fmt.Sprintf("https://cdn.test/%s/%d", category, f.seq)
	}
	return out, nil
}

func newTestPipeline() (*Pipeline, *fakeStore, *fakeGeocoder, *fakeUploader) {
	st := newFakeStore()
	geo := &fakeGeocoder{results: map[string]*geocode.Result{}}
	up := newFakeUploader()
	return &Pipeline{Store: st, Geocoder: geo, Uploader: up}, st, geo, up
}
