package domain

import (
	"sort"
	"time"
)

// CategoryIcon — допустимые иконки категории.
type CategoryIcon string

const (
	IconFolder CategoryIcon = "folder"
	IconStar   CategoryIcon = "star"
	IconShapes CategoryIcon = "shapes"
	IconType   CategoryIcon = "type"
	IconImage  CategoryIcon = "image"
)

// Category — категория предустановленных изображений.
// Категории с IsDefault нельзя переименовывать; удаление категории
// каскадно убирает все её изображения из выбора и из дизайна.
type Category struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Color       string       `json:"color"` // hex
	Icon        CategoryIcon `json:"icon"`
	IsDefault   bool         `json:"isDefault"`
	Order       int          `json:"order"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedBy   string       `json:"updatedBy"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// CategoryUpdate — частичное обновление категории.
type CategoryUpdate struct {
	Name        *string       `json:"name,omitempty"`
	Description *string       `json:"description,omitempty"`
	Color       *string       `json:"color,omitempty"`
	Icon        *CategoryIcon `json:"icon,omitempty"`
	Order       *int          `json:"order,omitempty"`
}

// CategoryOrder — пара категория/позиция для массовой пересортировки.
type CategoryOrder struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// SortCategories — сортирует категории по возрастанию Order (стабильно).
// Инвариант представления: категории всегда отдаются в этой последовательности.
func SortCategories(categories []Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Order < categories[j].Order
	})
}
