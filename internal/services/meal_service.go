package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Bleedaxe/HealthBlog/internal/models"
	"github.com/Bleedaxe/HealthBlog/internal/repository"
)

type mealStore interface {
	Create(ctx context.Context, authorID int64, name, description string) (*models.Meal, error)
	GetByID(ctx context.Context, mealID int64) (*models.Meal, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]models.Meal, error)
}

type MealService struct {
	mealRepo mealStore
	userRepo userReader
}

func NewMealService(mealRepo *repository.MealRepository, userRepo userReader) *MealService {
	return &MealService{mealRepo: mealRepo, userRepo: userRepo}
}

func (s *MealService) Create(ctx context.Context, authorID int64, name, description string) (*models.Meal, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return nil, ErrInvalidInput
	}
	return s.mealRepo.Create(ctx, authorID, name, description)
}

func (s *MealService) ListByAuthor(ctx context.Context, authorID int64) ([]models.Meal, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.mealRepo.ListByAuthor(ctx, authorID)
}

func (s *MealService) Get(ctx context.Context, actorID, mealID int64) (*models.Meal, error) {
	meal, err := s.mealRepo.GetByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	if meal.AuthorID != actorID {
		return nil, ErrForbidden
	}
	return meal, nil
}
