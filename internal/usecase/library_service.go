package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	cachemem "github.com/stitchworks/imagelib/internal/cache/memory"
	"github.com/stitchworks/imagelib/internal/designsync"
	"github.com/stitchworks/imagelib/internal/domain"
	"github.com/stitchworks/imagelib/internal/localstore"
	"github.com/stitchworks/imagelib/internal/ports"
)

// LibraryService — единственный владелец состояния библиотеки изображений:
// предустановленные изображения, категории, пользовательские загрузки,
// выбранные изображения и прайс. Все чтения/записи к удалённым сервисам
// и к кэшам идут через него.
//
// Порядок при удаляющих мутациях фиксирован: локальное состояние и кэш
// обновляются до каскада в граф дизайна, каскад — до возврата вызывающему.
type LibraryService struct {
	images     ports.PredefinedImageService // контракт предустановленных изображений
	categories ports.CategoryService        // контракт категорий
	uploads    ports.UploadService          // контракт пользовательских загрузок
	pricing    ports.PricingService         // контракт прайса

	imageCache    *cachemem.Cell[domain.ImageLibrary] // кэш библиотеки (изображения+категории)
	categoryCache *cachemem.Cell[[]domain.Category]   // кэш категорий
	pricingCache  *cachemem.Cell[domain.PricingData]  // кэш прайса

	bridge *designsync.Bridge // каскад в граф дизайна
	store  ports.LocalStore   // долговременное локальное хранилище
	log    ports.Logger

	deleteRetries    int           // попыток удалённого удаления (обычный путь)
	retryDelay       time.Duration // фиксированная пауза между попытками
	manualRetryCount int           // попыток при ручном повторе

	mu            sync.RWMutex
	loading       bool
	lastErr       error
	library       []domain.PredefinedImage
	cats          []domain.Category
	userImgs      []domain.UserImage
	selected      []domain.SelectedImage
	pricingData   domain.PricingData
	pricingLoaded bool

	entityLocks *keyedMutex // сериализация мутаций по id сущности
}

// Options — настройки реестра.
type Options struct {
	DeleteRetries    int           // по умолчанию 2
	RetryDelay       time.Duration // по умолчанию 1s
	ManualRetryCount int           // по умолчанию 3
}

// NewLibraryService — DI-конструктор. Гидрирует userImages/selectedImages
// из локального хранилища (best-effort: ошибки чтения логируются, коллекции
// остаются пустыми). Начальную загрузку удалённых данных выполняет
// вызывающий (bootstrap) через Load*.
func NewLibraryService(
	images ports.PredefinedImageService,
	categories ports.CategoryService,
	uploads ports.UploadService,
	pricing ports.PricingService,
	imageCache *cachemem.Cell[domain.ImageLibrary],
	categoryCache *cachemem.Cell[[]domain.Category],
	pricingCache *cachemem.Cell[domain.PricingData],
	bridge *designsync.Bridge,
	store ports.LocalStore,
	log ports.Logger,
	opts Options,
) *LibraryService {
	if opts.DeleteRetries <= 0 {
		opts.DeleteRetries = 2
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = time.Second
	}
	if opts.ManualRetryCount <= 0 {
		opts.ManualRetryCount = 3
	}

	s := &LibraryService{
		images:           images,
		categories:       categories,
		uploads:          uploads,
		pricing:          pricing,
		imageCache:       imageCache,
		categoryCache:    categoryCache,
		pricingCache:     pricingCache,
		bridge:           bridge,
		store:            store,
		log:              log,
		deleteRetries:    opts.DeleteRetries,
		retryDelay:       opts.RetryDelay,
		manualRetryCount: opts.ManualRetryCount,
		entityLocks:      newKeyedMutex(),
	}
	s.hydrate(context.Background())
	return s
}

// hydrate — восстановление userImages/selectedImages из локального
// хранилища. Любая проблема (нет хранилища, битый JSON) — лог и пустая
// коллекция, никогда не ошибка.
func (s *LibraryService) hydrate(ctx context.Context) {
	if s.store == nil {
		return
	}

	if raw, ok, err := s.store.Get(ctx, localstore.KeyUserImages); err != nil {
		s.log.Warnf(ctx, "hydrate user images: %v", err)
	} else if ok {
		var imgs []domain.UserImage
		if err := json.Unmarshal(raw, &imgs); err != nil {
			s.log.Warnf(ctx, "hydrate user images: corrupt payload: %v", err)
		} else {
			s.userImgs = imgs
		}
	}

	if raw, ok, err := s.store.Get(ctx, localstore.KeySelectedImages); err != nil {
		s.log.Warnf(ctx, "hydrate selected images: %v", err)
	} else if ok {
		var sel []domain.SelectedImage
		if err := json.Unmarshal(raw, &sel); err != nil {
			s.log.Warnf(ctx, "hydrate selected images: corrupt payload: %v", err)
		} else {
			s.selected = sel
		}
	}
}

// persistLocked — зеркалирование userImages/selectedImages в локальное
// хранилище. Write-through, best-effort: ошибки записи логируются и не
// возвращаются. Вызывается под s.mu.
func (s *LibraryService) persistLocked(ctx context.Context) {
	if s.store == nil {
		return
	}

	if raw, err := json.Marshal(s.userImgs); err != nil {
		s.log.Warnf(ctx, "persist user images: encode: %v", err)
	} else if err := s.store.Set(ctx, localstore.KeyUserImages, raw); err != nil {
		s.log.Warnf(ctx, "persist user images: %v", err)
	}

	if raw, err := json.Marshal(s.selected); err != nil {
		s.log.Warnf(ctx, "persist selected images: encode: %v", err)
	} else if err := s.store.Set(ctx, localstore.KeySelectedImages, raw); err != nil {
		s.log.Warnf(ctx, "persist selected images: %v", err)
	}
}

// recordErr — фиксирует последнюю ошибку для пассивного чтения UI.
func (s *LibraryService) recordErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// ------чтение состояния------

// IsLoading — идёт ли загрузка.
func (s *LibraryService) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err — последняя зафиксированная ошибка (nil после успешной операции).
func (s *LibraryService) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// PredefinedImages — копия текущей реплики библиотеки.
func (s *LibraryService) PredefinedImages() []domain.PredefinedImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.PredefinedImage(nil), s.library...)
}

// Categories — копия категорий (всегда отсортированы по Order).
func (s *LibraryService) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Category(nil), s.cats...)
}

// UserImages — копия пользовательских изображений (свежие первыми).
func (s *LibraryService) UserImages() []domain.UserImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.UserImage(nil), s.userImgs...)
}

// SelectedImages — копия выбранных изображений.
func (s *LibraryService) SelectedImages() []domain.SelectedImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.SelectedImage(nil), s.selected...)
}

// ------загрузка------

// LoadPredefinedImages — загрузка библиотеки (изображения + категории):
// сначала кэш, при промахе — удалённый сервис с записью в кэш и полной
// заменой реплики. Ошибка не возвращается: путь чтения фиксирует её в
// Err() и оставляет прежнее состояние.
func (s *LibraryService) LoadPredefinedImages(ctx context.Context, forceRefresh bool) {
	s.setLoading(true)
	defer s.setLoading(false)

	if lib, ok := s.imageCache.GetFromCache(forceRefresh); ok {
		s.log.Infof(ctx, "image library served from cache (%d images)", len(lib.Images))
		s.replaceLibrary(ctx, lib)
		s.recordErr(nil)
		return
	}

	start := time.Now()
	lib, err := s.images.ListWithCategories(ctx)
	if err != nil {
		s.log.Errorf(ctx, "load image library failed: %v", err)
		s.recordErr(err)
		return
	}

	s.imageCache.SetCache(lib, forceRefresh)
	s.replaceLibrary(ctx, lib)
	s.recordErr(nil)
	s.log.Infof(ctx, "image library loaded images=%d categories=%d took=%s",
		len(lib.Images), len(lib.Categories), time.Since(start))
}

// replaceLibrary — полная замена реплики; категории пересортировываются.
func (s *LibraryService) replaceLibrary(_ context.Context, lib domain.ImageLibrary) {
	cats := append([]domain.Category(nil), lib.Categories...)
	domain.SortCategories(cats)

	s.mu.Lock()
	s.library = append([]domain.PredefinedImage(nil), lib.Images...)
	s.cats = cats
	s.mu.Unlock()
}

func (s *LibraryService) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// CacheStats — диагностика кэша библиотеки.
func (s *LibraryService) CacheStats() cachemem.Stats {
	return s.imageCache.Stats()
}
