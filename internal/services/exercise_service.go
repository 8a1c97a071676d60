package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Bleedaxe/HealthBlog/internal/models"
	"github.com/Bleedaxe/HealthBlog/internal/repository"
)

type exerciseStore interface {
	Create(ctx context.Context, input repository.CreateExerciseInput) (*models.Exercise, error)
	GetByID(ctx context.Context, exerciseID int64) (*models.Exercise, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]models.Exercise, error)
}

type ExerciseService struct {
	exerciseRepo exerciseStore
	userRepo     userReader
}

func NewExerciseService(exerciseRepo *repository.ExerciseRepository, userRepo userReader) *ExerciseService {
	return &ExerciseService{exerciseRepo: exerciseRepo, userRepo: userRepo}
}

type CreateExerciseInput struct {
	Name         string
	Description  *string
	TargetMuscle string
}

func (s *ExerciseService) Create(ctx context.Context, authorID int64, input CreateExerciseInput) (*models.Exercise, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	targetMuscle := strings.TrimSpace(input.TargetMuscle)
	if name == "" || targetMuscle == "" {
		return nil, ErrInvalidInput
	}

	var description *string
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed == "" {
			return nil, ErrInvalidInput
		}
		description = &trimmed
	}

	return s.exerciseRepo.Create(ctx, repository.CreateExerciseInput{
		AuthorID:     authorID,
		Name:         name,
		Description:  description,
		TargetMuscle: targetMuscle,
	})
}

func (s *ExerciseService) ListByAuthor(ctx context.Context, authorID int64) ([]models.Exercise, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.exerciseRepo.ListByAuthor(ctx, authorID)
}

func (s *ExerciseService) Get(ctx context.Context, actorID, exerciseID int64) (*models.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.AuthorID != actorID {
		return nil, ErrForbidden
	}
	return exercise, nil
}
