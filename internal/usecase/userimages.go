package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/stitchworks/imagelib/internal/domain"
	"github.com/stitchworks/imagelib/pkg/metrics"
)

// DeleteOutcome — результат удаления пользовательского изображения.
// Локально изображение удалено во всех исходах; различается судьба
// удалённой копии.
type DeleteOutcome int

const (
	// DeleteLocalOnly — удалять на сервере было нечего (temp-изображение
	// или сервер уже не знает такой publicId).
	DeleteLocalOnly DeleteOutcome = iota
	// DeleteRemote — удалено и локально, и на сервере.
	DeleteRemote
	// DeleteRemoteFailed — локально удалено, удалённое удаление не удалось
	// после всех повторов; вызывающий может предложить ручной повтор.
	DeleteRemoteFailed
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteRemote:
		return "deleted"
	case DeleteRemoteFailed:
		return "deleted locally, remote delete failed"
	default:
		return "deleted locally"
	}
}

// AddUserImage — добавить загруженное изображение в локальную коллекцию.
// Дедупликация по publicId: повторное добавление — no-op. Свежие первыми.
func (s *LibraryService) AddUserImage(ctx context.Context, img domain.UserImage) {
	s.mu.Lock()
	for _, existing := range s.userImgs {
		if existing.PublicID == img.PublicID {
			s.mu.Unlock()
			return
		}
	}
	s.userImgs = append([]domain.UserImage{img}, s.userImgs...)
	s.persistLocked(ctx)
	s.mu.Unlock()
}

// UploadUserImages — загрузить файлы через сервис загрузок и добавить
// результаты в коллекцию.
func (s *LibraryService) UploadUserImages(ctx context.Context, files []domain.FileUpload) ([]domain.UserImage, error) {
	imgs, err := s.uploads.UploadMany(ctx, files)
	if err != nil {
		err = fmt.Errorf("upload user images: %w", err)
		s.recordErr(err)
		// Частично загруженные уже существуют на сервере — сохраняем их.
		for _, img := range imgs {
			s.AddUserImage(ctx, img)
		}
		return imgs, err
	}

	for _, img := range imgs {
		s.AddUserImage(ctx, img)
	}
	s.recordErr(nil)
	return imgs, nil
}

// RemoveUserImage — протокол согласованного удаления пользовательского
// изображения:
//  1. publicId с префиксом "temp-" существует только на клиенте —
//     удаляем локально, удалённый сервис не трогаем;
//  2. иначе проверяем существование на сервере; если сервер изображение
//     не знает — сразу к локальному удалению;
//  3. удаляем на сервере с фиксированным бюджетом повторов;
//  4. локальное удаление и каскад в дизайн выполняются БЕЗУСЛОВНО:
//     библиотека никогда не продолжает указывать на изображение, которое
//     пользователь попросил удалить, даже если сервер так и не ответил.
//
// Возвращаемый DeleteOutcome различает "удалено" и "удалено локально,
// на сервере не удалось" — второй случай даёт UI повод предложить
// ручной повтор (RetryRemoteDelete).
func (s *LibraryService) RemoveUserImage(ctx context.Context, publicID string) (DeleteOutcome, error) {
	unlock := s.entityLocks.Lock(publicID)
	defer unlock()

	s.mu.RLock()
	var target *domain.UserImage
	for i := range s.userImgs {
		if s.userImgs[i].PublicID == publicID {
			img := s.userImgs[i]
			target = &img
			break
		}
	}
	s.mu.RUnlock()

	// Отсутствующий publicId — идемпотентный no-op, не ошибка.
	if target == nil {
		return DeleteLocalOnly, nil
	}

	outcome := DeleteLocalOnly
	if !target.IsTemp() {
		outcome = s.reconcileRemoteDelete(ctx, publicID)
	}

	s.removeUserImageLocally(ctx, publicID, target.URL)

	if outcome == DeleteRemoteFailed {
		s.recordErr(domain.ErrRemoteDeleteFailed)
		return outcome, nil
	}
	s.recordErr(nil)
	return outcome, nil
}

// reconcileRemoteDelete — шаги 2–3 протокола: проверка существования и
// удаление с повторами. Исход не влияет на локальное удаление.
func (s *LibraryService) reconcileRemoteDelete(ctx context.Context, publicID string) DeleteOutcome {
	_, exists, err := s.uploads.GetInfo(ctx, publicID)
	if err != nil {
		s.log.Warnf(ctx, "existence check failed public_id=%s err=%v (will attempt delete anyway)", publicID, err)
	} else if !exists {
		s.log.Infof(ctx, "image already absent remotely public_id=%s", publicID)
		return DeleteLocalOnly
	}

	if s.deleteWithRetry(ctx, publicID, s.deleteRetries) {
		return DeleteRemote
	}
	return DeleteRemoteFailed
}

// deleteWithRetry — фиксированный бюджет попыток с фиксированной паузой
// (без экспоненциального роста). Пауза прерывается отменой контекста.
func (s *LibraryService) deleteWithRetry(ctx context.Context, publicID string, attempts int) bool {
	for attempt := 1; attempt <= attempts; attempt++ {
		err := s.uploads.Delete(ctx, publicID)
		if err == nil {
			return true
		}
		s.log.Warnf(ctx, "remote delete failed public_id=%s attempt=%d/%d err=%v", publicID, attempt, attempts, err)

		if attempt == attempts {
			break
		}
		metrics.DeleteRetries.Inc()
		if !sleepCtx(ctx, s.retryDelay) {
			break
		}
	}
	return false
}

// removeUserImageLocally — локальное удаление: коллекция, выбор,
// зеркалирование, каскад в дизайн. Порядок фиксирован: состояние и
// хранилище раньше каскада.
func (s *LibraryService) removeUserImageLocally(ctx context.Context, publicID, imageURL string) {
	s.mu.Lock()
	kept := s.userImgs[:0]
	for _, img := range s.userImgs {
		if img.PublicID != publicID {
			kept = append(kept, img)
		}
	}
	s.userImgs = kept
	s.selected = removeSelected(s.selected, publicID)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.bridge.RemoveImage(ctx, imageURL)
}

// RetryRemoteDelete — ручной повтор удалённого удаления после исхода
// DeleteRemoteFailed. Локально изображения уже нет; расширенный бюджет
// попыток применяется только к удалённой стороне.
func (s *LibraryService) RetryRemoteDelete(ctx context.Context, publicID string) error {
	unlock := s.entityLocks.Lock(publicID)
	defer unlock()

	_, exists, err := s.uploads.GetInfo(ctx, publicID)
	if err == nil && !exists {
		s.recordErr(nil)
		return nil
	}

	if s.deleteWithRetry(ctx, publicID, s.manualRetryCount) {
		s.recordErr(nil)
		return nil
	}

	err = fmt.Errorf("%w: public_id=%s", domain.ErrRemoteDeleteFailed, publicID)
	s.recordErr(err)
	return err
}

// sleepCtx — пауза, прерываемая контекстом; false при отмене.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
