package settings

import (
	"context"
	"errors"
	"sort"

	"github.com/amaryllis-studio/florist/internal/adapter/logger"
	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

type Service struct {
	repo   interfaces.SettingsRepository
	logger logger.Logger
}

func NewService(repo interfaces.SettingsRepository, lgr logger.Logger) *Service {
	return &Service{repo: repo, logger: lgr}
}

// Get returns the stored value for key, falling back to the compiled default
// when the key was never written.
func (s *Service) Get(ctx context.Context, key string) (*domain.Setting, error) {
	setting, err := s.repo.Get(ctx, key)
	if err == nil {
		return setting, nil
	}

	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		if def, ok := domain.DefaultSettings[key]; ok {
			return &def, nil
		}
	}
	return nil, err
}

// GetAll returns the defaults overlaid with every stored row.
func (s *Service) GetAll(ctx context.Context) ([]*domain.Setting, error) {
	stored, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]*domain.Setting, len(domain.DefaultSettings)+len(stored))
	for key := range domain.DefaultSettings {
		def := domain.DefaultSettings[key]
		merged[key] = &def
	}
	for _, setting := range stored {
		merged[setting.Key] = setting
	}

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]*domain.Setting, 0, len(keys))
	for _, key := range keys {
		result = append(result, merged[key])
	}
	return result, nil
}

func (s *Service) Set(ctx context.Context, key, value, description string) (*domain.Setting, error) {
	if key == "" {
		return nil, domain.NewValidationError("key", "is required")
	}

	setting := &domain.Setting{Key: key, Value: value, Description: description}
	if description == "" {
		if def, ok := domain.DefaultSettings[key]; ok {
			setting.Description = def.Description
		}
	}

	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, err
	}

	s.logger.Info("setting_updated", "Setting updated", "", map[string]interface{}{
		"key": key,
	})
	return setting, nil
}
