package usecase

import (
	"context"
	"fmt"

	"github.com/stitchworks/imagelib/internal/domain"
)

// AddPredefinedImage — создать изображение на удалённой стороне и добавить
// его в реплику и в кэш. Ошибка и фиксируется в Err(), и возвращается.
func (s *LibraryService) AddPredefinedImage(ctx context.Context, file domain.FileUpload, name, categoryID, description string) (domain.PredefinedImage, error) {
	img, err := s.images.Create(ctx, file, name, categoryID, description)
	if err != nil {
		err = fmt.Errorf("add predefined image: %w", err)
		s.recordErr(err)
		return domain.PredefinedImage{}, err
	}

	s.mu.Lock()
	s.library = append(s.library, img)
	s.mu.Unlock()

	s.imageCache.Mutate(func(lib domain.ImageLibrary) domain.ImageLibrary {
		lib.Images = append(append([]domain.PredefinedImage(nil), lib.Images...), img)
		return lib
	})

	s.recordErr(nil)
	s.log.Infof(ctx, "predefined image added id=%s category=%s", img.ID, img.CategoryID)
	return img, nil
}

// UpdatePredefinedImage — обновить изображение на удалённой стороне,
// заменить его в реплике и, если оно выбрано, поправить имя в проекции
// selectedImages (без полного переотбора).
func (s *LibraryService) UpdatePredefinedImage(ctx context.Context, id string, update domain.PredefinedImageUpdate) (domain.PredefinedImage, error) {
	unlock := s.entityLocks.Lock(id)
	defer unlock()

	img, err := s.images.Update(ctx, id, update)
	if err != nil {
		err = fmt.Errorf("update predefined image %s: %w", id, err)
		s.recordErr(err)
		return domain.PredefinedImage{}, err
	}

	s.mu.Lock()
	for i := range s.library {
		if s.library[i].ID == id {
			s.library[i] = img
			break
		}
	}
	for i := range s.selected {
		if s.selected[i].ID == id {
			s.selected[i].Name = img.Name
			break
		}
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.imageCache.Mutate(func(lib domain.ImageLibrary) domain.ImageLibrary {
		images := append([]domain.PredefinedImage(nil), lib.Images...)
		for i := range images {
			if images[i].ID == id {
				images[i] = img
				break
			}
		}
		lib.Images = images
		return lib
	})

	s.recordErr(nil)
	return img, nil
}

// DeletePredefinedImage — удалить изображение на удалённой стороне, убрать
// его из реплики, кэша и selectedImages и каскадировать удаление в граф
// дизайна. URL берётся до удалённого вызова: после локального удаления
// объекта уже нет.
func (s *LibraryService) DeletePredefinedImage(ctx context.Context, id string) error {
	unlock := s.entityLocks.Lock(id)
	defer unlock()

	s.mu.RLock()
	imageURL := ""
	for i := range s.library {
		if s.library[i].ID == id {
			imageURL = s.library[i].URL
			break
		}
	}
	s.mu.RUnlock()

	if err := s.images.Delete(ctx, id); err != nil {
		err = fmt.Errorf("delete predefined image %s: %w", id, err)
		s.recordErr(err)
		return err
	}

	s.mu.Lock()
	s.library = removePredefined(s.library, id)
	s.selected = removeSelected(s.selected, id)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.imageCache.Mutate(func(lib domain.ImageLibrary) domain.ImageLibrary {
		lib.Images = removePredefined(append([]domain.PredefinedImage(nil), lib.Images...), id)
		return lib
	})

	s.bridge.RemoveImage(ctx, imageURL)

	s.recordErr(nil)
	s.log.Infof(ctx, "predefined image deleted id=%s", id)
	return nil
}

// ResetPredefinedImages — сброс библиотеки к заводскому набору.
func (s *LibraryService) ResetPredefinedImages(ctx context.Context) ([]domain.PredefinedImage, error) {
	imgs, err := s.images.Reset(ctx)
	if err != nil {
		err = fmt.Errorf("reset predefined images: %w", err)
		s.recordErr(err)
		return nil, err
	}

	s.imageCache.InvalidateDomain()
	s.LoadPredefinedImages(ctx, true)

	s.recordErr(nil)
	return imgs, nil
}

// ------вспомогательные функции------

func removePredefined(images []domain.PredefinedImage, id string) []domain.PredefinedImage {
	out := images[:0]
	for _, img := range images {
		if img.ID != id {
			out = append(out, img)
		}
	}
	return out
}

func removeSelected(selected []domain.SelectedImage, id string) []domain.SelectedImage {
	out := selected[:0]
	for _, sel := range selected {
		if sel.ID != id {
			out = append(out, sel)
		}
	}
	return out
}
