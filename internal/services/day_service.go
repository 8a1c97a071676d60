package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Bleedaxe/HealthBlog/internal/models"
	"github.com/Bleedaxe/HealthBlog/internal/repository"
)

type dayStore interface {
	Create(ctx context.Context, authorID int64, name string) (*models.Day, error)
	GetByID(ctx context.Context, dayID int64) (*models.Day, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]models.Day, error)
	AttachMeal(ctx context.Context, dayID, mealID int64, mealTime *time.Time) error
	AttachTraining(ctx context.Context, dayID, trainingID int64, trainingTime *time.Time) error
	SetMealCompleted(ctx context.Context, dayID, mealID int64, completed bool) error
	ListMealsByDayIDs(ctx context.Context, dayIDs []int64) (map[int64][]models.MealEntry, error)
	ListTrainingsByDayIDs(ctx context.Context, dayIDs []int64) (map[int64][]models.TrainingEntry, error)
}

type mealReader interface {
	GetByID(ctx context.Context, mealID int64) (*models.Meal, error)
}

type trainingReader interface {
	GetByID(ctx context.Context, trainingID int64) (*models.Training, error)
}

type DayService struct {
	dayRepo      dayStore
	mealRepo     mealReader
	trainingRepo trainingReader
	userRepo     userReader
}

func NewDayService(
	dayRepo *repository.DayRepository,
	mealRepo *repository.MealRepository,
	trainingRepo *repository.TrainingRepository,
	userRepo userReader,
) *DayService {
	return &DayService{
		dayRepo:      dayRepo,
		mealRepo:     mealRepo,
		trainingRepo: trainingRepo,
		userRepo:     userRepo,
	}
}

func (s *DayService) Create(ctx context.Context, authorID int64, name string) (*models.Day, error) {
	if err := s.resolveUser(ctx, authorID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	return s.dayRepo.Create(ctx, authorID, name)
}

func (s *DayService) ListByAuthor(ctx context.Context, authorID int64) ([]models.Day, error) {
	if err := s.resolveUser(ctx, authorID); err != nil {
		return nil, err
	}
	return s.dayRepo.ListByAuthor(ctx, authorID)
}

func (s *DayService) Get(ctx context.Context, actorID, dayID int64) (*models.DayDetail, error) {
	day, err := s.ownedDay(ctx, actorID, dayID)
	if err != nil {
		return nil, err
	}

	meals, err := s.dayRepo.ListMealsByDayIDs(ctx, []int64{day.ID})
	if err != nil {
		return nil, err
	}
	trainings, err := s.dayRepo.ListTrainingsByDayIDs(ctx, []int64{day.ID})
	if err != nil {
		return nil, err
	}

	return &models.DayDetail{
		Day:       *day,
		Meals:     emptyIfNilMeals(meals[day.ID]),
		Trainings: emptyIfNilTrainings(trainings[day.ID]),
	}, nil
}

func (s *DayService) AttachMeal(ctx context.Context, actorID, dayID, mealID int64, mealTime *time.Time) error {
	if _, err := s.ownedDay(ctx, actorID, dayID); err != nil {
		return err
	}

	meal, err := s.mealRepo.GetByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMealNotFound
		}
		return err
	}
	if meal.AuthorID != actorID {
		return ErrForbidden
	}

	if err := s.dayRepo.AttachMeal(ctx, dayID, mealID, mealTime); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *DayService) AttachTraining(ctx context.Context, actorID, dayID, trainingID int64, trainingTime *time.Time) error {
	if _, err := s.ownedDay(ctx, actorID, dayID); err != nil {
		return err
	}

	training, err := s.trainingRepo.GetByID(ctx, trainingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTrainingNotFound
		}
		return err
	}
	if training.AuthorID != actorID {
		return ErrForbidden
	}

	if err := s.dayRepo.AttachTraining(ctx, dayID, trainingID, trainingTime); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *DayService) SetMealCompleted(ctx context.Context, actorID, dayID, mealID int64, completed bool) error {
	if _, err := s.ownedDay(ctx, actorID, dayID); err != nil {
		return err
	}

	if err := s.dayRepo.SetMealCompleted(ctx, dayID, mealID, completed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMealNotFound
		}
		return err
	}
	return nil
}

func (s *DayService) ownedDay(ctx context.Context, actorID, dayID int64) (*models.Day, error) {
	day, err := s.dayRepo.GetByID(ctx, dayID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDayNotFound
		}
		return nil, err
	}
	if day.AuthorID != actorID {
		return nil, ErrForbidden
	}
	return day, nil
}

func (s *DayService) resolveUser(ctx context.Context, userID int64) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
