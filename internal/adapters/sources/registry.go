package sources

import (
	"equipment-search-service/internal/core/port"
)

// Registry - статический реестр известных источников. Собирается один
// раз при старте приложения и дальше не меняется, поэтому блокировки
// не нужны.
type Registry struct {
	// order фиксирует порядок источников: map в Go не упорядочен, а
	// порядок опроса должен быть детерминированным.
	order    []string
	adapters map[string]port.EquipmentSourcePort
}

func NewRegistry(adapters ...port.EquipmentSourcePort) *Registry {
	r := &Registry{
		order:    make([]string, 0, len(adapters)),
		adapters: make(map[string]port.EquipmentSourcePort, len(adapters)),
	}
	for _, a := range adapters {
		r.order = append(r.order, a.ID())
		r.adapters[a.ID()] = a
	}
	return r
}

// Resolve возвращает адаптеры для запрошенного подмножества источников,
// сохраняя порядок реестра (а не порядок запроса). Пустой список
// означает "все известные источники". Неизвестные идентификаторы
// молча пропускаются и просто не вносят вклад в результат.
func (r *Registry) Resolve(ids []string) []port.EquipmentSourcePort {
	if len(ids) == 0 {
		resolved := make([]port.EquipmentSourcePort, 0, len(r.order))
		for _, id := range r.order {
			resolved = append(resolved, r.adapters[id])
		}
		return resolved
	}

	requested := make(map[string]bool, len(ids))
	for _, id := range ids {
		requested[id] = true
	}

	var resolved []port.EquipmentSourcePort
	for _, id := range r.order {
		if requested[id] {
			resolved = append(resolved, r.adapters[id])
		}
	}
	return resolved
}

func (r *Registry) Get(id string) (port.EquipmentSourcePort, bool) {
	adapter, ok := r.adapters[id]
	return adapter, ok
}
