package catalog

import (
	"context"
	"time"

	"github.com/amaryllis-studio/florist/internal/adapter/logger"
	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

type Service struct {
	bouquets interfaces.BouquetRepository
	logger   logger.Logger
}

func NewService(bouquets interfaces.BouquetRepository, lgr logger.Logger) *Service {
	return &Service{bouquets: bouquets, logger: lgr}
}

func (s *Service) CreateBouquet(ctx context.Context, cmd interfaces.BouquetCommand) (*domain.Bouquet, error) {
	if err := validate(cmd); err != nil {
		return nil, err
	}

	now := time.Now()
	bouquet := &domain.Bouquet{
		Name:        cmd.Name,
		Price:       cmd.Price,
		Description: cmd.Description,
		ImageURL:    cmd.ImageURL,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if cmd.IsActive != nil {
		bouquet.IsActive = *cmd.IsActive
	}

	if err := s.bouquets.Create(ctx, bouquet); err != nil {
		return nil, err
	}

	s.logger.Info("bouquet_created", "Bouquet created", "", map[string]interface{}{
		"bouquet_id": bouquet.ID,
		"name":       bouquet.Name,
	})
	return bouquet, nil
}

func (s *Service) GetBouquet(ctx context.Context, id int) (*domain.Bouquet, error) {
	return s.bouquets.FindByID(ctx, id)
}

func (s *Service) UpdateBouquet(ctx context.Context, id int, cmd interfaces.BouquetCommand) (*domain.Bouquet, error) {
	if err := validate(cmd); err != nil {
		return nil, err
	}

	bouquet, err := s.bouquets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	bouquet.Name = cmd.Name
	bouquet.Price = cmd.Price
	bouquet.Description = cmd.Description
	if cmd.ImageURL != "" {
		bouquet.ImageURL = cmd.ImageURL
	}
	if cmd.IsActive != nil {
		bouquet.IsActive = *cmd.IsActive
	}
	bouquet.UpdatedAt = time.Now()

	if err := s.bouquets.Update(ctx, bouquet); err != nil {
		return nil, err
	}
	return bouquet, nil
}

// DeactivateBouquet hides the bouquet from the customer catalog. The row is
// kept because historic orders reference it.
func (s *Service) DeactivateBouquet(ctx context.Context, id int) error {
	bouquet, err := s.bouquets.FindByID(ctx, id)
	if err != nil {
		return err
	}

	bouquet.IsActive = false
	bouquet.UpdatedAt = time.Now()
	if err := s.bouquets.Update(ctx, bouquet); err != nil {
		return err
	}

	s.logger.Info("bouquet_deactivated", "Bouquet deactivated", "", map[string]interface{}{
		"bouquet_id": bouquet.ID,
	})
	return nil
}

func (s *Service) ListBouquets(ctx context.Context, activeOnly bool) ([]*domain.Bouquet, error) {
	return s.bouquets.List(ctx, activeOnly)
}

func validate(cmd interfaces.BouquetCommand) error {
	if cmd.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if !cmd.Price.IsPositive() {
		return domain.NewValidationError("price", "must be greater than zero")
	}
	return nil
}
