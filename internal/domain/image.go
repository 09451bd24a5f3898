package domain

import (
	"strings"
	"time"
)

// ImageSource — источник изображения в библиотеке.
type ImageSource string

const (
	SourcePredefined ImageSource = "predefined" // изображение из предустановленной библиотеки
	SourceUser       ImageSource = "user"       // изображение, загруженное пользователем
)

// TempPublicIDPrefix — префикс publicId изображения, которое существует
// только на клиенте (оптимистичная заглушка на время загрузки).
// Такие изображения никогда не удаляются через удалённый сервис.
const TempPublicIDPrefix = "temp-"

// PredefinedImage — изображение из библиотеки, которой владеет удалённый сервис.
// Реестр держит клиентскую реплику.
type PredefinedImage struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	CategoryID  string    `json:"categoryId"`
	Description string    `json:"description,omitempty"`
	PublicID    string    `json:"publicId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedBy   string    `json:"updatedBy"`
	Width       int       `json:"width,omitempty"`
	Height      int       `json:"height,omitempty"`
	Format      string    `json:"format,omitempty"`
	Size        int64     `json:"size,omitempty"`
	Category    *Category `json:"category,omitempty"`
}

// PredefinedImageUpdate — частичное обновление предустановленного изображения.
type PredefinedImageUpdate struct {
	Name        *string `json:"name,omitempty"`
	CategoryID  *string `json:"categoryId,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UserImage — загруженное пользователем изображение (данные Cloudinary).
// Коллекция хранится локально и переживает перезапуск.
type UserImage struct {
	URL          string    `json:"url"`
	PublicID     string    `json:"publicId"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Format       string    `json:"format"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"createdAt"`
	OriginalName string    `json:"originalName,omitempty"`
}

// IsTemp — true, если изображение существует только на клиенте.
func (u UserImage) IsTemp() bool {
	return strings.HasPrefix(u.PublicID, TempPublicIDPrefix)
}

// SelectedImage — производная проекция: одна запись на изображение,
// отмеченное пользователем для текущего дизайна, независимо от источника.
// Инвариант: уникальность по ID.
type SelectedImage struct {
	ID         string      `json:"id"`
	URL        string      `json:"url"`
	Name       string      `json:"name"`
	Source     ImageSource `json:"source"`
	SelectedAt time.Time   `json:"selectedAt"`
}

// Selectable — то, что можно отметить для дизайна. Каждый вариант
// (предустановленное/пользовательское) сам знает свой идентификатор выбора:
// для предустановленного это id, для пользовательского — publicId.
type Selectable interface {
	SelectionID() string
	SelectionURL() string
	SelectionName() string
	SelectionSource() ImageSource
}

func (p PredefinedImage) SelectionID() string          { return p.ID }
func (p PredefinedImage) SelectionURL() string         { return p.URL }
func (p PredefinedImage) SelectionName() string        { return p.Name }
func (p PredefinedImage) SelectionSource() ImageSource { return SourcePredefined }

func (u UserImage) SelectionID() string          { return u.PublicID }
func (u UserImage) SelectionURL() string         { return u.URL }
func (u UserImage) SelectionName() string        { return u.OriginalName }
func (u UserImage) SelectionSource() ImageSource { return SourceUser }

// PlacedLogo — размещённый в дизайне куртки логотип (внешний граф дизайна).
// Граф хранит только URL изображения, поэтому URL — ключ связи
// между библиотекой и дизайном.
type PlacedLogo struct {
	ID       string `json:"id"`
	ImageURL string `json:"image"`
}

// FileUpload — содержимое файла для создания изображения.
type FileUpload struct {
	Name        string
	ContentType string
	Content     []byte
}

// ImageLibrary — совместная выдача сервиса предустановленных изображений:
// изображения вместе с категориями (один запрос на загрузку библиотеки).
type ImageLibrary struct {
	Images     []PredefinedImage `json:"images"`
	Categories []Category        `json:"categories"`
}
