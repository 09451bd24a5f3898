package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/stitchworks/imagelib/internal/domain"
	"github.com/stitchworks/imagelib/internal/usecase"
)

func TestAddUserImage_DedupeByPublicID(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	img := domain.UserImage{PublicID: "u-1", URL: "https://cdn/u.png"}
	h.svc.AddUserImage(ctx, img)
	h.svc.AddUserImage(ctx, img)

	if got := h.svc.UserImages(); len(got) != 1 {
		t.Fatalf("expected one image after duplicate add, got %d", len(got))
	}
}

func TestAddUserImage_NewestFirst(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.svc.AddUserImage(ctx, domain.UserImage{PublicID: "old", URL: "https://cdn/old.png"})
	h.svc.AddUserImage(ctx, domain.UserImage{PublicID: "new", URL: "https://cdn/new.png"})

	got := h.svc.UserImages()
	if len(got) != 2 || got[0].PublicID != "new" {
		t.Fatalf("newest image must come first: %+v", got)
	}
}

// temp-изображение существует только на клиенте: удалённый сервис не
// вызывается вовсе (любой вызов мока провалит тест).
func TestRemoveUserImage_TempIsLocalOnly(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.svc.AddUserImage(ctx, domain.UserImage{PublicID: "temp-1", URL: "blob:a"})

	outcome, err := h.svc.RemoveUserImage(ctx, "temp-1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if outcome != usecase.DeleteLocalOnly {
		t.Fatalf("expected DeleteLocalOnly, got %v", outcome)
	}
	if len(h.svc.UserImages()) != 0 {
		t.Fatalf("temp image must be gone locally")
	}
}

func TestRemoveUserImage_AbsentIDIsNoop(t *testing.T) {
	h := newHarness(t)

	outcome, err := h.svc.RemoveUserImage(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if outcome != usecase.DeleteLocalOnly {
		t.Fatalf("expected DeleteLocalOnly, got %v", outcome)
	}
}

func TestRemoveUserImage_RemoteDelete(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.svc.AddUserImage(ctx, domain.UserImage{PublicID: "u-1", URL: "https://cdn/u.png"})

	gomock.InOrder(
		h.uploads.EXPECT().GetInfo(gomock.Any(), "u-1").Return(domain.UserImage{PublicID: "u-1"}, true, nil),
		h.uploads.EXPECT().Delete(gomock.Any(), "u-1").Return(nil),
	)

	outcome, err := h.svc.RemoveUserImage(ctx, "u-1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if outcome != usecase.DeleteRemote {
		t.Fatalf("expected DeleteRemote, got %v", outcome)
	}
	if len(h.svc.UserImages()) != 0 {
		t.Fatalf("image must be gone locally")
	}
}

// Сервер изображение уже не знает — удаление не вызывается, исход локальный.
func TestRemoveUserImage_AlreadyAbsentRemotely(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.svc.AddUserImage(ctx, domain.UserImage{PublicID: "u-1", URL: "https://cdn/u.png"})
	h.uploads.EXPECT().GetInfo(gomock.Any(), "u-1").Return(domain.UserImage{}, false, nil)

	outcome, err := h.svc.RemoveUserImage(ctx, "u-1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if outcome != usecase.DeleteLocalOnly {
		t.Fatalf("expected DeleteLocalOnly, got %v", outcome)
	}
}

// Удалённое удаление не удалось после всех повторов: локально изображение
// всё равно удалено, каскад выполнен, исход DeleteRemoteFailed, ошибка
// зафиксирована в Err(), но вызов не провален.
func TestRemoveUserImage_RemoteFailureStillRemovesLocally(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.svc.AddUserImage(ctx, domain.UserImage{PublicID: "u-1", URL: "https://cdn/u.png"})
	h.svc.SelectImage(ctx, domain.UserImage{PublicID: "u-1", URL: "https://cdn/u.png"})
	h.sink.logos = []domain.PlacedLogo{{ID: "l1", ImageURL: "https://cdn/u.png"}}

	remoteErr := errors.New("remote down")
	h.uploads.EXPECT().GetInfo(gomock.Any(), "u-1").Return(domain.UserImage{PublicID: "u-1"}, true, nil)
	// Бюджет по умолчанию — две попытки.
	h.uploads.EXPECT().Delete(gomock.Any(), "u-1").Return(remoteErr).Times(2)

	outcome, err := h.svc.RemoveUserImage(ctx, "u-1")
	if err != nil {
		t.Fatalf("remove must not fail the call: %v", err)
	}
	if outcome != usecase.DeleteRemoteFailed {
		t.Fatalf("expected DeleteRemoteFailed, got %v", outcome)
	}
	if len(h.svc.UserImages()) != 0 {
		t.Fatalf("image must be gone locally regardless of the remote outcome")
	}
	if h.svc.IsImageSelected("u-1") {
		t.Fatalf("selection must be cleaned up")
	}
	if h.sink.hasURL("https://cdn/u.png") {
		t.Fatalf("design cascade must run regardless of the remote outcome")
	}
	if !errors.Is(h.svc.Err(), domain.ErrRemoteDeleteFailed) {
		t.Fatalf("expected ErrRemoteDeleteFailed recorded, got %v", h.svc.Err())
	}
}

// Сквозной сценарий: загрузка с оптимистичной заглушкой, выбор, удаление.
func TestUserImage_TempLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	img := domain.UserImage{PublicID: "temp-1", URL: "blob:a", OriginalName: "photo.png"}
	h.svc.AddUserImage(ctx, img)
	h.svc.SelectImage(ctx, img)
	h.sink.logos = []domain.PlacedLogo{{ID: "l1", ImageURL: "blob:a"}}

	outcome, err := h.svc.RemoveUserImage(ctx, "temp-1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if outcome != usecase.DeleteLocalOnly {
		t.Fatalf("expected DeleteLocalOnly, got %v", outcome)
	}
	if len(h.svc.UserImages()) != 0 || len(h.svc.SelectedImages()) != 0 {
		t.Fatalf("both collections must be empty")
	}
	if h.sink.hasURL("blob:a") {
		t.Fatalf("design cascade must remove the blob url")
	}
}

func TestRetryRemoteDelete_Succeeds(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	gomock.InOrder(
		h.uploads.EXPECT().GetInfo(gomock.Any(), "u-1").Return(domain.UserImage{PublicID: "u-1"}, true, nil),
		h.uploads.EXPECT().Delete(gomock.Any(), "u-1").Return(errors.New("flaky")),
		h.uploads.EXPECT().Delete(gomock.Any(), "u-1").Return(nil),
	)

	if err := h.svc.RetryRemoteDelete(ctx, "u-1"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if h.svc.Err() != nil {
		t.Fatalf("error state must be cleared: %v", h.svc.Err())
	}
}

// Ручной повтор использует расширенный бюджет (три попытки) и при полном
// провале возвращает ErrRemoteDeleteFailed.
func TestRetryRemoteDelete_ExhaustsManualBudget(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.uploads.EXPECT().GetInfo(gomock.Any(), "u-1").Return(domain.UserImage{PublicID: "u-1"}, true, nil)
	h.uploads.EXPECT().Delete(gomock.Any(), "u-1").Return(errors.New("still down")).Times(3)

	err := h.svc.RetryRemoteDelete(ctx, "u-1")
	if !errors.Is(err, domain.ErrRemoteDeleteFailed) {
		t.Fatalf("expected ErrRemoteDeleteFailed, got %v", err)
	}
}

func TestRetryRemoteDelete_AlreadyAbsent(t *testing.T) {
	h := newHarness(t)

	h.uploads.EXPECT().GetInfo(gomock.Any(), "u-1").Return(domain.UserImage{}, false, nil)

	if err := h.svc.RetryRemoteDelete(context.Background(), "u-1"); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestUploadUserImages_KeepsPartialResults(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	files := []domain.FileUpload{
		{Name: "a.png", ContentType: "image/png", Content: []byte{1}},
		{Name: "b.png", ContentType: "image/png", Content: []byte{2}},
	}
	uploaded := []domain.UserImage{{PublicID: "u-a", URL: "https://cdn/a.png"}}
	uploadErr := errors.New("second file rejected")
	h.uploads.EXPECT().UploadMany(gomock.Any(), files).Return(uploaded, uploadErr)

	got, err := h.svc.UploadUserImages(ctx, files)
	if !errors.Is(err, uploadErr) {
		t.Fatalf("expected wrapped upload error, got %v", err)
	}
	if len(got) != 1 || got[0].PublicID != "u-a" {
		t.Fatalf("partial results must be returned: %+v", got)
	}
	if imgs := h.svc.UserImages(); len(imgs) != 1 || imgs[0].PublicID != "u-a" {
		t.Fatalf("partially uploaded image must land in the collection: %+v", imgs)
	}
}
