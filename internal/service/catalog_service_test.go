package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/repository"
)

type fakeTypeRepo struct {
	items     []domain.ProcedureType
	listCalls int
	onChange  func([]domain.ProcedureType)
	cancelled bool
}

func (f *fakeTypeRepo) Create(_ context.Context, pt *domain.ProcedureType) error {
	f.items = append(f.items, *pt)
	return nil
}

func (f *fakeTypeRepo) Update(_ context.Context, _ *domain.ProcedureType) error { return nil }

func (f *fakeTypeRepo) GetByID(_ context.Context, id string) (*domain.ProcedureType, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			copied := f.items[i]
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeTypeRepo) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeTypeRepo) List(_ context.Context) ([]domain.ProcedureType, error) {
	f.listCalls++
	return append([]domain.ProcedureType{}, f.items...), nil
}

// Watch delivers an initial snapshot and hands the callback back to the
// test, which pushes later snapshots by calling it directly.
func (f *fakeTypeRepo) Watch(_ context.Context, onChange func([]domain.ProcedureType)) (func(), error) {
	f.onChange = onChange
	onChange(append([]domain.ProcedureType{}, f.items...))
	return func() { f.cancelled = true }, nil
}

var _ repository.ProcedureTypeRepository = (*fakeTypeRepo)(nil)

func catalogEntry(id, nombre string, estado bool) domain.ProcedureType {
	return domain.ProcedureType{ID: id, Nombre: nombre, Estado: estado, FechaCreacion: time.Now()}
}

func TestListActiveServesLiveSnapshot(t *testing.T) {
	repo := &fakeTypeRepo{items: []domain.ProcedureType{
		catalogEntry("t-1", "Licencia de obra", true),
		catalogEntry("t-2", "Permiso retirado", false),
	}}
	catalog := NewCatalogService(repo)

	stop, err := catalog.StartWatch(context.Background())
	if err != nil {
		t.Fatalf("StartWatch failed: %v", err)
	}

	active, err := catalog.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != "t-1" {
		t.Errorf("Expected only the active entry, got %v", active)
	}
	if repo.listCalls != 0 {
		t.Errorf("Warm snapshot should not hit the store, got %d list calls", repo.listCalls)
	}

	// A change event replaces the snapshot wholesale.
	repo.onChange([]domain.ProcedureType{
		catalogEntry("t-3", "Certificado de residencia", true),
	})
	active, err = catalog.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive after change failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != "t-3" {
		t.Errorf("Expected replaced snapshot, got %v", active)
	}

	stop()
	if !repo.cancelled {
		t.Error("Stop func should tear the subscription down")
	}
}

func TestListActiveFallsBackToStoreWhenCold(t *testing.T) {
	repo := &fakeTypeRepo{items: []domain.ProcedureType{
		catalogEntry("t-1", "Licencia de obra", true),
	}}
	catalog := NewCatalogService(repo)

	active, err := catalog.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(active) != 1 || repo.listCalls != 1 {
		t.Errorf("Cold read should query the store once, got %d items / %d calls",
			len(active), repo.listCalls)
	}
}
