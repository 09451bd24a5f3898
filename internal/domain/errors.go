package domain

import "errors"

// Базовые (sentinel) ошибки доменного слоя.
var (
	// ErrAuthTokenMissing — отсутствует токен авторизации. Локальная
	// ошибка предусловия: запрос к серверу не выполняется.
	ErrAuthTokenMissing = errors.New("auth token missing")

	// ErrRemoteDeleteFailed — удалённое удаление не удалось после всех
	// повторов (локально изображение уже удалено).
	ErrRemoteDeleteFailed = errors.New("remote delete failed")

	// ErrNotFound — сущность отсутствует на удалённой стороне.
	ErrNotFound = errors.New("not found")
)
