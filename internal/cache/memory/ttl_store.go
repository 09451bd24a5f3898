package memory

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stitchworks/imagelib/pkg/metrics"
)

// Entry — закэшированное значение с отметкой времени записи.
type Entry[T any] struct {
	Data      T
	Timestamp time.Time
}

// Stats — диагностика состояния кэша.
type Stats struct {
	TotalEntries   int `json:"totalEntries"`
	ExpiredEntries int `json:"expiredEntries"`
	MemoryUsage    int `json:"memoryUsage"` // приблизительно: длина сериализованных данных
}

// Store — общий (разделяемый всеми потребителями домена) кэш с TTL и
// ограничением размера. Последовательность read-purge-evict-write
// атомарна под мьютексом: чтение всегда видит согласованный снимок без
// просроченных записей.
type Store[T any] struct {
	domain     string
	ttl        time.Duration
	maxEntries int

	mu      sync.Mutex
	entries map[string]Entry[T]
}

// NewStore — конструктор. Дефолты при нулевых параметрах: TTL 5 минут,
// не более 10 записей.
func NewStore[T any](domain string, ttl time.Duration, maxEntries int) *Store[T] {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 10
	}
	return &Store[T]{
		domain:     domain,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]Entry[T]),
	}
}

// Get — вернуть значение по ключу, если запись ещё свежая.
// Перед поиском чистятся просроченные записи и ужимается карта до лимита.
func (s *Store[T]) Get(key string) (T, bool) {
	var zero T
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeLocked(now)

	ent, ok := s.entries[key]
	if !ok {
		metrics.CacheOps.WithLabelValues(s.domain, "miss").Inc()
		return zero, false
	}
	metrics.CacheOps.WithLabelValues(s.domain, "hit").Inc()
	return ent.Data, true
}

// Set — записать свежую запись с текущей отметкой времени.
func (s *Store[T]) Set(key string, data T) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = Entry[T]{Data: data, Timestamp: now}
	s.purgeLocked(now)
}

// Mutate — инкрементальное изменение уже закэшированной записи с
// обновлением отметки времени. Холодный кэш мутация не наполняет
// (cache-aside): если записи нет или она просрочена — тихий no-op.
// Возвращает, была ли запись изменена.
func (s *Store[T]) Mutate(key string, fn func(T) T) bool {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeLocked(now)

	ent, ok := s.entries[key]
	if !ok {
		return false
	}
	s.entries[key] = Entry[T]{Data: fn(ent.Data), Timestamp: now}
	return true
}

// Clear — полная очистка.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]Entry[T])
	metrics.CacheSize.WithLabelValues(s.domain).Set(0)
}

// Invalidate — удаление записей, ключ которых содержит подстроку.
// Пустая подстрока эквивалентна Clear.
func (s *Store[T]) Invalidate(substr string) {
	if substr == "" {
		s.Clear()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.entries {
		if strings.Contains(key, substr) {
			delete(s.entries, key)
		}
	}
	metrics.CacheSize.WithLabelValues(s.domain).Set(float64(len(s.entries)))
}

// Len — текущее число записей (включая просроченные, до ближайшей чистки).
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stats — диагностика: всего записей, из них просроченных, примерный объём.
func (s *Store[T]) Stats() Stats {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{TotalEntries: len(s.entries)}
	for _, ent := range s.entries {
		if now.Sub(ent.Timestamp) > s.ttl {
			st.ExpiredEntries++
		}
		if raw, err := json.Marshal(ent.Data); err == nil {
			st.MemoryUsage += len(raw)
		}
	}
	return st
}

// ------вспомогательные функции------

// purgeLocked — удаляет просроченные записи и, если карта всё ещё больше
// лимита, вытесняет самые старые по Timestamp. Вызывается под мьютексом.
func (s *Store[T]) purgeLocked(now time.Time) {
	for key, ent := range s.entries {
		if now.Sub(ent.Timestamp) > s.ttl {
			delete(s.entries, key)
			metrics.CacheOps.WithLabelValues(s.domain, "expired").Inc()
		}
	}

	if len(s.entries) > s.maxEntries {
		type keyed struct {
			key string
			ts  time.Time
		}
		byAge := make([]keyed, 0, len(s.entries))
		for key, ent := range s.entries {
			byAge = append(byAge, keyed{key: key, ts: ent.Timestamp})
		}
		sort.Slice(byAge, func(i, j int) bool { return byAge[i].ts.Before(byAge[j].ts) })

		for _, k := range byAge {
			if len(s.entries) <= s.maxEntries {
				break
			}
			delete(s.entries, k.key)
			metrics.CacheOps.WithLabelValues(s.domain, "evicted").Inc()
		}
	}

	metrics.CacheSize.WithLabelValues(s.domain).Set(float64(len(s.entries)))
}
