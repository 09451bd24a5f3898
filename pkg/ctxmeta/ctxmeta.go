// Пакет ctxmeta — метаданные запроса в context.Context (request_id,
// trace_id). Транспорт кладёт, request-логгер читает; ни один из них не
// зависит от другого напрямую — только от этого пакета.
package ctxmeta

import "context"

type ctxKey string

// KeyRequestID — ключ request_id; тип ключа неэкспортируемый, чтобы
// исключить коллизии с чужими значениями контекста.
const KeyRequestID ctxKey = "request_id"

// WithRequestID — положить request_id в контекст; пустой id — no-op.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext — request_id из контекста, если он там есть.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
