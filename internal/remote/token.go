package remote

import (
	"context"

	"github.com/stitchworks/imagelib/internal/ports"
)

// StaticTokenProvider — фиксированный на процесс токен из конфигурации.
// Пустое значение означает анонимный режим: мутирующие вызовы будут
// падать локально с ErrAuthTokenMissing, не доходя до сети.
type StaticTokenProvider string

var _ ports.TokenProvider = StaticTokenProvider("")

func (t StaticTokenProvider) Token(context.Context) (string, error) {
	return string(t), nil
}
