package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Bleedaxe/HealthBlog/internal/models"
	"github.com/Bleedaxe/HealthBlog/internal/repository"
)

type trainingStore interface {
	Create(ctx context.Context, input repository.CreateTrainingInput) (*models.Training, error)
	GetByID(ctx context.Context, trainingID int64) (*models.Training, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]models.Training, error)
	AttachExercise(ctx context.Context, trainingID, exerciseID int64, repetitions, series int) error
	ListExercises(ctx context.Context, trainingID int64) ([]models.ExerciseEntry, error)
}

type exerciseReader interface {
	GetByID(ctx context.Context, exerciseID int64) (*models.Exercise, error)
}

type TrainingService struct {
	trainingRepo trainingStore
	exerciseRepo exerciseReader
	userRepo     userReader
}

func NewTrainingService(
	trainingRepo *repository.TrainingRepository,
	exerciseRepo *repository.ExerciseRepository,
	userRepo userReader,
) *TrainingService {
	return &TrainingService{
		trainingRepo: trainingRepo,
		exerciseRepo: exerciseRepo,
		userRepo:     userRepo,
	}
}

type CreateTrainingInput struct {
	Name        string
	Type        string
	Description string
}

func (s *TrainingService) Create(ctx context.Context, authorID int64, input CreateTrainingInput) (*models.Training, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	trainingType := strings.TrimSpace(input.Type)
	description := strings.TrimSpace(input.Description)
	if name == "" || trainingType == "" || description == "" {
		return nil, ErrInvalidInput
	}

	return s.trainingRepo.Create(ctx, repository.CreateTrainingInput{
		AuthorID:    authorID,
		Name:        name,
		Type:        trainingType,
		Description: description,
	})
}

func (s *TrainingService) ListByAuthor(ctx context.Context, authorID int64) ([]models.Training, error) {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.trainingRepo.ListByAuthor(ctx, authorID)
}

func (s *TrainingService) Get(ctx context.Context, actorID, trainingID int64) (*models.TrainingDetail, error) {
	training, err := s.ownedTraining(ctx, actorID, trainingID)
	if err != nil {
		return nil, err
	}

	exercises, err := s.trainingRepo.ListExercises(ctx, training.ID)
	if err != nil {
		return nil, err
	}

	return &models.TrainingDetail{
		Training:  *training,
		Exercises: exercises,
	}, nil
}

// AttachExercise adds one of the author's exercises to one of the author's
// trainings with the given volume.
func (s *TrainingService) AttachExercise(
	ctx context.Context,
	actorID int64,
	trainingID int64,
	exerciseID int64,
	repetitions int,
	series int,
) error {
	if repetitions <= 0 || series <= 0 {
		return ErrInvalidInput
	}

	if _, err := s.ownedTraining(ctx, actorID, trainingID); err != nil {
		return err
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrExerciseNotFound
		}
		return err
	}
	if exercise.AuthorID != actorID {
		return ErrForbidden
	}

	if err := s.trainingRepo.AttachExercise(ctx, trainingID, exerciseID, repetitions, series); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *TrainingService) ownedTraining(ctx context.Context, actorID, trainingID int64) (*models.Training, error) {
	training, err := s.trainingRepo.GetByID(ctx, trainingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}
	if training.AuthorID != actorID {
		return nil, ErrForbidden
	}
	return training, nil
}
