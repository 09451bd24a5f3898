package localstore_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stitchworks/imagelib/internal/domain"
	"github.com/stitchworks/imagelib/internal/localstore"
)

func openStore(t *testing.T) *localstore.Store {
	t.Helper()
	s, err := localstore.Open(context.Background(), filepath.Join(t.TempDir(), "imagelib.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", []byte(`{"a":1}`)))
	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"a":1}`, string(got))

	// upsert
	require.NoError(t, s.Set(ctx, "k", []byte(`{"a":2}`)))
	got, _, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.JSONEq(t, `{"a":2}`, string(got))

	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	// повторное удаление — не ошибка
	require.NoError(t, s.Delete(ctx, "k"))
}

// Сериализация selectedImages/userImages и обратная гидрация дают тот же
// набор (selectedAt переживает путь через RFC3339-строку).
func TestStore_RoundTripCollections(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	selectedAt := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	selected := []domain.SelectedImage{
		{ID: "img-1", URL: "https://cdn/a.png", Name: "Anchor", Source: domain.SourcePredefined, SelectedAt: selectedAt},
		{ID: "temp-7", URL: "blob:x", Name: "draft", Source: domain.SourceUser, SelectedAt: selectedAt.Add(time.Minute)},
	}
	userImages := []domain.UserImage{
		{URL: "https://cdn/u.png", PublicID: "u-1", Width: 100, Height: 50, Format: "png", Size: 2048, CreatedAt: selectedAt},
	}

	rawSel, err := json.Marshal(selected)
	require.NoError(t, err)
	rawUser, err := json.Marshal(userImages)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, localstore.KeySelectedImages, rawSel))
	require.NoError(t, s.Set(ctx, localstore.KeyUserImages, rawUser))

	gotSelRaw, ok, err := s.Get(ctx, localstore.KeySelectedImages)
	require.NoError(t, err)
	require.True(t, ok)
	var gotSel []domain.SelectedImage
	require.NoError(t, json.Unmarshal(gotSelRaw, &gotSel))
	require.Equal(t, selected, gotSel)

	gotUserRaw, ok, err := s.Get(ctx, localstore.KeyUserImages)
	require.NoError(t, err)
	require.True(t, ok)
	var gotUser []domain.UserImage
	require.NoError(t, json.Unmarshal(gotUserRaw, &gotUser))
	require.Equal(t, userImages, gotUser)
}

// Переоткрытие существующей базы не перетирает данные (схема уже актуальна).
func TestStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "imagelib.db")

	s1, err := localstore.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s1.Set(ctx, "k", []byte("v")))
	require.NoError(t, s1.Close())

	s2, err := localstore.Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()

	got, ok, err := s2.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), got)
}
