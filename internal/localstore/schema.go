package localstore

const schema = `
CREATE TABLE kv_entries (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// migrations — инкрементальные изменения схемы; применяются по текущему
// PRAGMA user_version. migrations[0] пустая: версия 0 — базовая схема.
var migrations = []string{
	"",
}
