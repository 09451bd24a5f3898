package designsync_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stitchworks/imagelib/internal/designsync"
	"github.com/stitchworks/imagelib/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

// fakeSink — граф дизайна в памяти.
type fakeSink struct {
	logos     []domain.PlacedLogo
	listErr   error
	removeErr error
	removed   []string
}

func (f *fakeSink) PlacedLogos(context.Context) ([]domain.PlacedLogo, error) {
	return f.logos, f.listErr
}

func (f *fakeSink) RemoveLogo(_ context.Context, id string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, id)
	for i, l := range f.logos {
		if l.ID == id {
			f.logos = append(f.logos[:i], f.logos[i+1:]...)
			break
		}
	}
	return nil
}

func TestRemoveImage_NilSinkIsNoop(t *testing.T) {
	b := designsync.New(nil, noopLogger{})
	// Не должно паниковать и не должно ничего требовать от графа.
	b.RemoveImage(context.Background(), "https://cdn/x.png")
}

func TestRemoveImage_ExactURLMatch(t *testing.T) {
	sink := &fakeSink{logos: []domain.PlacedLogo{
		{ID: "l1", ImageURL: "https://cdn/a.png"},
		{ID: "l2", ImageURL: "https://cdn/b.png"},
		{ID: "l3", ImageURL: "https://cdn/a.png"},
		{ID: "l4", ImageURL: "https://cdn/a.png?v=2"}, // префикс не считается
	}}
	b := designsync.New(sink, noopLogger{})

	b.RemoveImage(context.Background(), "https://cdn/a.png")

	if len(sink.removed) != 2 {
		t.Fatalf("expected 2 removals, got %v", sink.removed)
	}
	for _, l := range sink.logos {
		if l.ImageURL == "https://cdn/a.png" {
			t.Fatalf("logo with target url survived: %+v", l)
		}
	}
}

func TestRemoveImage_SinkErrorsDoNotPropagate(t *testing.T) {
	sink := &fakeSink{
		logos:     []domain.PlacedLogo{{ID: "l1", ImageURL: "u"}},
		removeErr: errors.New("design graph down"),
	}
	b := designsync.New(sink, noopLogger{})

	// Каскад — best-effort: ошибка графа не должна выйти наружу.
	b.RemoveImage(context.Background(), "u")
}
