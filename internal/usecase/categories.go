package usecase

import (
	"context"
	"fmt"

	"github.com/stitchworks/imagelib/internal/domain"
)

// LoadCategories — отдельная загрузка категорий (кэш-first).
// Как и прочие пути чтения, не возвращает ошибку — фиксирует её в Err().
func (s *LibraryService) LoadCategories(ctx context.Context, forceRefresh bool) {
	if cats, ok := s.categoryCache.GetFromCache(forceRefresh); ok {
		s.replaceCategories(cats)
		s.recordErr(nil)
		return
	}

	cats, err := s.categories.List(ctx)
	if err != nil {
		s.log.Errorf(ctx, "load categories failed: %v", err)
		s.recordErr(err)
		return
	}

	s.categoryCache.SetCache(cats, forceRefresh)
	s.replaceCategories(cats)
	s.recordErr(nil)
}

func (s *LibraryService) replaceCategories(cats []domain.Category) {
	sorted := append([]domain.Category(nil), cats...)
	domain.SortCategories(sorted)

	s.mu.Lock()
	s.cats = sorted
	s.mu.Unlock()
}

// CreateCategory — создать категорию и вставить её с пересортировкой по
// Order (инвариант представления: категории всегда в порядке Order).
func (s *LibraryService) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	created, err := s.categories.Create(ctx, category)
	if err != nil {
		err = fmt.Errorf("create category: %w", err)
		s.recordErr(err)
		return domain.Category{}, err
	}

	s.mu.Lock()
	s.cats = append(s.cats, created)
	domain.SortCategories(s.cats)
	s.mu.Unlock()

	s.categoryCache.Mutate(func(cats []domain.Category) []domain.Category {
		out := append(append([]domain.Category(nil), cats...), created)
		domain.SortCategories(out)
		return out
	})
	s.mirrorLibraryCategories(func(cats []domain.Category) []domain.Category {
		cats = append(cats, created)
		domain.SortCategories(cats)
		return cats
	})

	s.recordErr(nil)
	s.log.Infof(ctx, "category created id=%s order=%d", created.ID, created.Order)
	return created, nil
}

// UpdateCategory — обновить категорию. Переименование категорий с
// IsDefault запрещает UI; здесь допускается только смена порядка/иконки.
func (s *LibraryService) UpdateCategory(ctx context.Context, id string, update domain.CategoryUpdate) (domain.Category, error) {
	unlock := s.entityLocks.Lock(id)
	defer unlock()

	updated, err := s.categories.Update(ctx, id, update)
	if err != nil {
		err = fmt.Errorf("update category %s: %w", id, err)
		s.recordErr(err)
		return domain.Category{}, err
	}

	s.mu.Lock()
	for i := range s.cats {
		if s.cats[i].ID == id {
			s.cats[i] = updated
			break
		}
	}
	domain.SortCategories(s.cats)
	s.mu.Unlock()

	s.categoryCache.Mutate(func(cats []domain.Category) []domain.Category {
		out := append([]domain.Category(nil), cats...)
		for i := range out {
			if out[i].ID == id {
				out[i] = updated
				break
			}
		}
		domain.SortCategories(out)
		return out
	})
	s.mirrorLibraryCategories(func(cats []domain.Category) []domain.Category {
		for i := range cats {
			if cats[i].ID == id {
				cats[i] = updated
				break
			}
		}
		domain.SortCategories(cats)
		return cats
	})

	s.recordErr(nil)
	return updated, nil
}

// DeleteCategory — удалить категорию с транзитивным каскадом: каждое
// изображение этой категории уходит из реплики, из selectedImages и из
// графа дизайна, хотя операция ни одно из них не называет напрямую.
// Список затронутых изображений снимается ДО удалённого вызова.
func (s *LibraryService) DeleteCategory(ctx context.Context, id string) error {
	unlock := s.entityLocks.Lock(id)
	defer unlock()

	s.mu.RLock()
	var member []domain.PredefinedImage
	for _, img := range s.library {
		if img.CategoryID == id {
			member = append(member, img)
		}
	}
	s.mu.RUnlock()

	if err := s.categories.Delete(ctx, id); err != nil {
		err = fmt.Errorf("delete category %s: %w", id, err)
		s.recordErr(err)
		return err
	}

	s.mu.Lock()
	kept := s.cats[:0]
	for _, c := range s.cats {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.cats = kept
	for _, img := range member {
		s.library = removePredefined(s.library, img.ID)
		s.selected = removeSelected(s.selected, img.ID)
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.categoryCache.Mutate(func(cats []domain.Category) []domain.Category {
		out := make([]domain.Category, 0, len(cats))
		for _, c := range cats {
			if c.ID != id {
				out = append(out, c)
			}
		}
		return out
	})
	// В кэшированной паре библиотеки устаревают обе половины: и
	// изображения категории, и сама категория.
	s.imageCache.Mutate(func(lib domain.ImageLibrary) domain.ImageLibrary {
		images := append([]domain.PredefinedImage(nil), lib.Images...)
		for _, img := range member {
			images = removePredefined(images, img.ID)
		}
		lib.Images = images

		cats := make([]domain.Category, 0, len(lib.Categories))
		for _, c := range lib.Categories {
			if c.ID != id {
				cats = append(cats, c)
			}
		}
		lib.Categories = cats
		return lib
	})

	// Каскад после обновления состояния и кэшей, до возврата вызывающему.
	for _, img := range member {
		s.bridge.RemoveImage(ctx, img.URL)
	}

	s.recordErr(nil)
	s.log.Infof(ctx, "category deleted id=%s cascaded_images=%d", id, len(member))
	return nil
}

// ReorderCategories — массовая смена порядка.
func (s *LibraryService) ReorderCategories(ctx context.Context, orders []domain.CategoryOrder) ([]domain.Category, error) {
	cats, err := s.categories.Reorder(ctx, orders)
	if err != nil {
		err = fmt.Errorf("reorder categories: %w", err)
		s.recordErr(err)
		return nil, err
	}

	s.replaceCategories(cats)
	s.categoryCache.SetCache(cats, false)
	s.mirrorLibraryCategories(func([]domain.Category) []domain.Category {
		sorted := append([]domain.Category(nil), cats...)
		domain.SortCategories(sorted)
		return sorted
	})
	s.recordErr(nil)
	return s.Categories(), nil
}

// ResetCategories — сброс категорий к заводскому набору.
func (s *LibraryService) ResetCategories(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.categories.Reset(ctx)
	if err != nil {
		err = fmt.Errorf("reset categories: %w", err)
		s.recordErr(err)
		return nil, err
	}

	s.replaceCategories(cats)
	s.categoryCache.InvalidateDomain()
	s.categoryCache.SetCache(cats, false)
	s.mirrorLibraryCategories(func([]domain.Category) []domain.Category {
		sorted := append([]domain.Category(nil), cats...)
		domain.SortCategories(sorted)
		return sorted
	})
	s.recordErr(nil)
	return s.Categories(), nil
}

// mirrorLibraryCategories — зеркалирует мутацию категорий во вторую
// кэшированную проекцию: тёплая пара библиотеки (изображения+категории)
// иначе вернула бы устаревший список категорий при следующей загрузке.
// No-op на холодном кэше, как и прочие кэш-мутации.
func (s *LibraryService) mirrorLibraryCategories(fn func([]domain.Category) []domain.Category) {
	s.imageCache.Mutate(func(lib domain.ImageLibrary) domain.ImageLibrary {
		lib.Categories = fn(append([]domain.Category(nil), lib.Categories...))
		return lib
	})
}
