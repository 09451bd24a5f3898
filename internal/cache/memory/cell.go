package memory

// Суффиксы ключей: обычная загрузка и форсированное обновление
// кэшируются раздельно.
const (
	keyNormal  = "-normal"
	keyRefresh = "-refresh"
)

// Cell — типизированное представление одного домена поверх общего Store.
// Несколько потребителей, созданных над одним Store, видят одно и то же
// состояние кэша (явно разделяемый синглтон вместо глобальной переменной).
type Cell[T any] struct {
	store  *Store[T]
	domain string
}

// NewCell — привязывает домен к разделяемому хранилищу.
func NewCell[T any](store *Store[T], domain string) *Cell[T] {
	return &Cell[T]{store: store, domain: domain}
}

func (c *Cell[T]) key(forceRefresh bool) string {
	if forceRefresh {
		return c.domain + keyRefresh
	}
	return c.domain + keyNormal
}

// GetFromCache — свежая запись домена или промах.
func (c *Cell[T]) GetFromCache(forceRefresh bool) (T, bool) {
	return c.store.Get(c.key(forceRefresh))
}

// SetCache — записать свежие данные домена.
func (c *Cell[T]) SetCache(data T, forceRefresh bool) {
	c.store.Set(c.key(forceRefresh), data)
}

// Mutate — инкрементально изменить запись под обычным (не refresh)
// ключом; no-op на холодном кэше.
func (c *Cell[T]) Mutate(fn func(T) T) bool {
	return c.store.Mutate(c.key(false), fn)
}

// InvalidateDomain — сбросить все ключи домена.
func (c *Cell[T]) InvalidateDomain() {
	c.store.Invalidate(c.domain)
}

// Stats — диагностика разделяемого хранилища.
func (c *Cell[T]) Stats() Stats {
	return c.store.Stats()
}
