package ports

import (
	"context"

	"github.com/stitchworks/imagelib/internal/domain"
)

// DesignSink — внешний граф дизайна куртки. Необязательный коллаборатор:
// реестр может работать и вне контекста дизайна (nil в конструкторе).
// Граф хранит только URL изображения, поэтому связь идёт по точному
// совпадению URL, а удаление — по id самого логотипа.
type DesignSink interface {
	// PlacedLogos — все размещённые в дизайне логотипы.
	PlacedLogos(ctx context.Context) ([]domain.PlacedLogo, error)

	// RemoveLogo — убрать логотип из дизайна по его id.
	RemoveLogo(ctx context.Context, logoID string) error
}
