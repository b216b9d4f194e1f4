package localization

import (
	"locale-manager/core/storage"
	"locale-manager/core/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Localization feature.
// Without a database the feature is disabled.
func NewFeature(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, settings Settings) *Feature {
	f := &Feature{}
	if db == nil {
		return f
	}
	f.service = NewService(store.New(db), client, bucket, logger, settings)
	f.handler = NewHandler(f.service)
	return f
}

// Service returns the feature's service, nil when disabled.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "localization"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
