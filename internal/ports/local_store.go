package ports

import "context"

// LocalStore — долговременное локальное key/value хранилище.
// Используется для зеркалирования userImages/selectedImages: запись
// выполняется на каждое изменение (write-through, best-effort).
type LocalStore interface {
	// Get — значение по ключу; (nil, false, nil) если ключа нет.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set — записать/заменить значение по ключу.
	Set(ctx context.Context, key string, value []byte) error

	// Delete — удалить ключ (отсутствие ключа не ошибка).
	Delete(ctx context.Context, key string) error

	Close() error
}
