package designsync

import (
	"context"

	"github.com/stitchworks/imagelib/internal/ports"
	"github.com/stitchworks/imagelib/pkg/metrics"
)

// Bridge — односторонняя синхронизация: когда изображение становится
// недостижимым в библиотеке (удалено, снято с выбора, удалена его
// категория), все ссылающиеся на него логотипы убираются из внешнего
// графа дизайна. Граф — необязательный коллаборатор: вне контекста
// дизайна Bridge создаётся с nil-sink и каскад превращается в no-op.
type Bridge struct {
	sink ports.DesignSink
	log  ports.Logger
}

// New — конструктор. sink может быть nil.
func New(sink ports.DesignSink, log ports.Logger) *Bridge {
	return &Bridge{sink: sink, log: log}
}

// RemoveImage — убрать из дизайна каждый логотип, чья картинка точно
// совпадает с imageURL. URL — единственный ключ связи: граф не знает ни
// id изображения, ни его источника. Ошибки графа логируются и не
// прерывают каскад.
func (b *Bridge) RemoveImage(ctx context.Context, imageURL string) {
	if b.sink == nil {
		b.log.Infof(ctx, "design sync skipped: no design context url=%s", imageURL)
		return
	}
	if imageURL == "" {
		return
	}

	logos, err := b.sink.PlacedLogos(ctx)
	if err != nil {
		b.log.Warnf(ctx, "design sync: listing placed logos failed: %v", err)
		return
	}

	removed := 0
	for _, logo := range logos {
		if logo.ImageURL != imageURL {
			continue
		}
		if rmErr := b.sink.RemoveLogo(ctx, logo.ID); rmErr != nil {
			b.log.Warnf(ctx, "design sync: remove logo id=%s failed: %v", logo.ID, rmErr)
			continue
		}
		removed++
	}

	if removed > 0 {
		metrics.DesignCascades.Add(float64(removed))
		b.log.Infof(ctx, "design sync: removed %d logo(s) url=%s", removed, imageURL)
	}
}
