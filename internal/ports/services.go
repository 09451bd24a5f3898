package ports

import (
	"context"

	"github.com/stitchworks/imagelib/internal/domain"
)

// TokenProvider — внешний источник bearer-токена для мутирующих вызовов.
type TokenProvider interface {
	// Token — вернуть актуальный токен; пустая строка = токена нет.
	Token(ctx context.Context) (string, error)
}

// CategoryService — удалённый контракт категорий.
type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, category domain.Category) (domain.Category, error)
	Update(ctx context.Context, id string, update domain.CategoryUpdate) (domain.Category, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, orders []domain.CategoryOrder) ([]domain.Category, error)
	Reset(ctx context.Context) ([]domain.Category, error)
}

// PredefinedImageService — удалённый контракт предустановленных изображений.
type PredefinedImageService interface {
	// ListWithCategories — изображения вместе с категориями (одна загрузка библиотеки).
	ListWithCategories(ctx context.Context) (domain.ImageLibrary, error)
	Create(ctx context.Context, file domain.FileUpload, name, categoryID, description string) (domain.PredefinedImage, error)
	Update(ctx context.Context, id string, update domain.PredefinedImageUpdate) (domain.PredefinedImage, error)
	Delete(ctx context.Context, id string) error
	Reset(ctx context.Context) ([]domain.PredefinedImage, error)
}

// UploadService — удалённый контракт пользовательских загрузок (Cloudinary).
type UploadService interface {
	UploadOne(ctx context.Context, file domain.FileUpload) (domain.UserImage, error)
	UploadMany(ctx context.Context, files []domain.FileUpload) ([]domain.UserImage, error)
	// Delete — удалить по publicId; временная ошибка сети/сервера возвращается как error.
	Delete(ctx context.Context, publicID string) error
	// GetInfo — (image, true) если изображение существует на удалённой стороне.
	GetInfo(ctx context.Context, publicID string) (domain.UserImage, bool, error)
}

// PricingService — удалённый контракт прайса.
type PricingService interface {
	Get(ctx context.Context) (domain.PricingData, error)
	Update(ctx context.Context, update domain.PricingUpdate) (domain.PricingData, error)
	Reset(ctx context.Context) (domain.PricingData, error)
}
