package port

import (
	"context"

	"equipment-search-service/internal/core/domain"
)

// EquipmentSourcePort объединяет все операции, которые можно выполнить
// с одним внешним маркетплейсом оборудования.
type EquipmentSourcePort interface {
	// ID возвращает идентификатор источника (например, "equipment-watch").
	ID() string
	// Name возвращает человекочитаемое имя источника.
	Name() string

	// Search возвращает нормализованные объявления этого источника.
	// По контракту никогда не возвращает ошибку: любой внутренний сбой
	// (отсутствие ключа, не-2xx ответ, битый payload, сетевая ошибка)
	// превращается в пустой срез и строку в логе. Падение одного
	// источника не должно влиять на агрегированный результат.
	Search(ctx context.Context, criteria domain.SearchCriteria) []domain.EquipmentListing

	// FetchDetails извлекает полную карточку объявления по его ID внутри
	// источника. В отличие от Search, здесь ошибка допустима и
	// поднимается наверх.
	FetchDetails(ctx context.Context, equipmentID string) (*domain.EquipmentListing, error)
}

// SourceRegistryPort - реестр известных источников.
type SourceRegistryPort interface {
	// Resolve превращает запрошенный список идентификаторов в адаптеры,
	// сохраняя порядок реестра. Пустой список означает "все источники".
	// Неизвестные идентификаторы молча пропускаются.
	Resolve(ids []string) []EquipmentSourcePort
	// Get возвращает адаптер по идентификатору.
	Get(id string) (EquipmentSourcePort, bool)
}
