package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	cachemem "github.com/stitchworks/imagelib/internal/cache/memory"
	"github.com/stitchworks/imagelib/internal/designsync"
	"github.com/stitchworks/imagelib/internal/domain"
	"github.com/stitchworks/imagelib/internal/ports/mocks"
	"github.com/stitchworks/imagelib/internal/usecase"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

// fakeSink — граф дизайна в памяти для проверки каскадов.
type fakeSink struct {
	mu    sync.Mutex
	logos []domain.PlacedLogo
}

func (f *fakeSink) PlacedLogos(context.Context) ([]domain.PlacedLogo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.PlacedLogo(nil), f.logos...), nil
}

func (f *fakeSink) RemoveLogo(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, l := range f.logos {
		if l.ID == id {
			f.logos = append(f.logos[:i], f.logos[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeSink) hasURL(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.logos {
		if l.ImageURL == url {
			return true
		}
	}
	return false
}

// fakeStore — локальное хранилище в памяти.
type fakeStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeStore() *fakeStore { return &fakeStore{data: make(map[string][]byte)} }

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeStore) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeStore) Close() error { return nil }

// harness — собранный реестр с моками сервисов и фейками графа/хранилища.
type harness struct {
	svc        *usecase.LibraryService
	images     *mocks.MockPredefinedImageService
	categories *mocks.MockCategoryService
	uploads    *mocks.MockUploadService
	pricing    *mocks.MockPricingService
	sink       *fakeSink
	store      *fakeStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		images:     mocks.NewMockPredefinedImageService(ctrl),
		categories: mocks.NewMockCategoryService(ctrl),
		uploads:    mocks.NewMockUploadService(ctrl),
		pricing:    mocks.NewMockPricingService(ctrl),
		sink:       &fakeSink{},
		store:      newFakeStore(),
	}

	log := noopLogger{}
	imageStore := cachemem.NewStore[domain.ImageLibrary]("images", 5*time.Minute, 10)
	categoryStore := cachemem.NewStore[[]domain.Category]("categories", 5*time.Minute, 10)
	pricingStore := cachemem.NewStore[domain.PricingData]("pricing", 5*time.Minute, 10)

	h.svc = usecase.NewLibraryService(
		h.images, h.categories, h.uploads, h.pricing,
		cachemem.NewCell(imageStore, "images"),
		cachemem.NewCell(categoryStore, "categories"),
		cachemem.NewCell(pricingStore, "pricing"),
		designsync.New(h.sink, log),
		h.store,
		log,
		usecase.Options{RetryDelay: time.Millisecond},
	)
	return h
}

// loadLibrary — разовая загрузка реплики через мок сервиса изображений.
func (h *harness) loadLibrary(t *testing.T, lib domain.ImageLibrary) {
	t.Helper()
	h.images.EXPECT().ListWithCategories(gomock.Any()).Return(lib, nil)
	h.svc.LoadPredefinedImages(context.Background(), false)
	if err := h.svc.Err(); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
}
