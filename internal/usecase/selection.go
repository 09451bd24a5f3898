package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/stitchworks/imagelib/internal/domain"
)

// SelectImage — отметить изображение для текущего дизайна. Идемпотентно:
// уже выбранный id — no-op. Id берётся из варианта Selectable (id для
// предустановленного, publicId для пользовательского). Выбор НЕ
// каскадируется в граф дизайна — туда изображение попадает отдельным
// действием размещения; синхронно с графом движется только удаление.
func (s *LibraryService) SelectImage(ctx context.Context, img domain.Selectable) {
	id := img.SelectionID()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sel := range s.selected {
		if sel.ID == id {
			return
		}
	}

	s.selected = append([]domain.SelectedImage{{
		ID:         id,
		URL:        img.SelectionURL(),
		Name:       img.SelectionName(),
		Source:     img.SelectionSource(),
		SelectedAt: time.Now(),
	}}, s.selected...)
	s.persistLocked(ctx)
}

// SelectByID — выбор по id из соответствующей коллекции реестра.
func (s *LibraryService) SelectByID(ctx context.Context, id string, source domain.ImageSource) error {
	var sel domain.Selectable

	s.mu.RLock()
	switch source {
	case domain.SourcePredefined:
		for _, img := range s.library {
			if img.ID == id {
				sel = img
				break
			}
		}
	case domain.SourceUser:
		for _, img := range s.userImgs {
			if img.PublicID == id {
				sel = img
				break
			}
		}
	}
	s.mu.RUnlock()

	if sel == nil {
		return fmt.Errorf("select image: %w: id=%s source=%s", domain.ErrNotFound, id, source)
	}
	s.SelectImage(ctx, sel)
	return nil
}

// UnselectImage — снять выбор. Снятие намеренно каскадирует в граф
// дизайна: "выбрано" и "в дизайне" движутся вместе при удалении, хотя и
// не при добавлении. Отсутствующий id — идемпотентный no-op.
func (s *LibraryService) UnselectImage(ctx context.Context, id string) {
	s.mu.Lock()
	imageURL, found := "", false
	for _, sel := range s.selected {
		if sel.ID == id {
			imageURL, found = sel.URL, true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	s.selected = removeSelected(s.selected, id)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.bridge.RemoveImage(ctx, imageURL)
}

// ClearSelectedImages — опустошить выбор, каскадировав в дизайн каждое
// выбранное изображение.
func (s *LibraryService) ClearSelectedImages(ctx context.Context) {
	s.mu.Lock()
	urls := make([]string, 0, len(s.selected))
	for _, sel := range s.selected {
		urls = append(urls, sel.URL)
	}
	s.selected = nil
	s.persistLocked(ctx)
	s.mu.Unlock()

	for _, u := range urls {
		s.bridge.RemoveImage(ctx, u)
	}
}

// IsImageSelected — есть ли id в выборе.
func (s *LibraryService) IsImageSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sel := range s.selected {
		if sel.ID == id {
			return true
		}
	}
	return false
}
