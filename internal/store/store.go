package store

import "context"

// Ключи коллекций. Одна коллекция — один JSON-массив.
const (
	KeyLeads     = "leads"
	KeyTemplates = "templates"
	KeyPortfolio = "portfolio"
)

// DocumentStore абстрагирует чтение и запись целой JSON-коллекции.
// Бэкенд выбирается один раз при старте процесса и передаётся репозиториям
// явно, внутри Read/Write нет обращений к окружению.
type DocumentStore interface {
	// Read десериализует коллекцию key в out. Отсутствующая коллекция —
	// не ошибка: out получает пустой массив.
	Read(ctx context.Context, key string, out any) error
	// Write сериализует v (отформатированный JSON) и сохраняет коллекцию целиком.
	Write(ctx context.Context, key string, v any) error
}
