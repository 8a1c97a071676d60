package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Bleedaxe/HealthBlog/internal/models"
)

type stubDayStore struct {
	createResult *models.Day
	createErr    error
	lastName     string

	days map[int64]*models.Day
	list []models.Day

	attachMealErr     error
	lastAttachedMeal  int64
	lastMealTime      *time.Time
	attachTrainingErr error

	setCompletedErr error
	lastCompleted   bool

	meals     map[int64][]models.MealEntry
	trainings map[int64][]models.TrainingEntry
}

func (s *stubDayStore) Create(_ context.Context, _ int64, name string) (*models.Day, error) {
	s.lastName = name
	return s.createResult, s.createErr
}

func (s *stubDayStore) GetByID(_ context.Context, dayID int64) (*models.Day, error) {
	day, ok := s.days[dayID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return day, nil
}

func (s *stubDayStore) ListByAuthor(_ context.Context, _ int64) ([]models.Day, error) {
	return s.list, nil
}

func (s *stubDayStore) AttachMeal(_ context.Context, _, mealID int64, mealTime *time.Time) error {
	s.lastAttachedMeal = mealID
	s.lastMealTime = mealTime
	return s.attachMealErr
}

func (s *stubDayStore) AttachTraining(_ context.Context, _, _ int64, _ *time.Time) error {
	return s.attachTrainingErr
}

func (s *stubDayStore) SetMealCompleted(_ context.Context, _, _ int64, completed bool) error {
	s.lastCompleted = completed
	return s.setCompletedErr
}

func (s *stubDayStore) ListMealsByDayIDs(_ context.Context, _ []int64) (map[int64][]models.MealEntry, error) {
	return s.meals, nil
}

func (s *stubDayStore) ListTrainingsByDayIDs(_ context.Context, _ []int64) (map[int64][]models.TrainingEntry, error) {
	return s.trainings, nil
}

type stubMealReader struct {
	meal *models.Meal
	err  error
}

func (r *stubMealReader) GetByID(_ context.Context, _ int64) (*models.Meal, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.meal, nil
}

type stubTrainingReader struct {
	training *models.Training
	err      error
}

func (r *stubTrainingReader) GetByID(_ context.Context, _ int64) (*models.Training, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.training, nil
}

func TestDayServiceCreateTrimsName(t *testing.T) {
	store := &stubDayStore{createResult: &models.Day{ID: 21, AuthorID: 1, Name: "Push day"}}
	service := &DayService{dayRepo: store, userRepo: testUsers()}

	day, err := service.Create(context.Background(), 1, "  Push day  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if day.ID != 21 {
		t.Fatalf("expected day 21, got %d", day.ID)
	}
	if store.lastName != "Push day" {
		t.Fatalf("expected trimmed name, got %q", store.lastName)
	}

	if _, err := service.Create(context.Background(), 1, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestDayServiceGetLoadsEntries(t *testing.T) {
	store := &stubDayStore{
		days: map[int64]*models.Day{21: {ID: 21, AuthorID: 1, Name: "Push day"}},
		meals: map[int64][]models.MealEntry{
			21: {{Meal: models.Meal{ID: 31, Name: "Oats"}, Completed: true}},
		},
	}
	service := &DayService{dayRepo: store, userRepo: testUsers()}

	detail, err := service.Get(context.Background(), 1, 21)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(detail.Meals) != 1 || !detail.Meals[0].Completed {
		t.Fatalf("unexpected meals: %+v", detail.Meals)
	}
	if detail.Trainings == nil || len(detail.Trainings) != 0 {
		t.Fatalf("expected empty trainings slice, got %+v", detail.Trainings)
	}
}

func TestDayServiceGetChecksAuthor(t *testing.T) {
	store := &stubDayStore{
		days: map[int64]*models.Day{21: {ID: 21, AuthorID: 1}},
	}
	service := &DayService{dayRepo: store, userRepo: testUsers()}

	if _, err := service.Get(context.Background(), 2, 21); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := service.Get(context.Background(), 1, 99); !errors.Is(err, ErrDayNotFound) {
		t.Fatalf("expected ErrDayNotFound, got %v", err)
	}
}

func TestDayServiceAttachMeal(t *testing.T) {
	store := &stubDayStore{
		days: map[int64]*models.Day{21: {ID: 21, AuthorID: 1}},
	}
	meals := &stubMealReader{meal: &models.Meal{ID: 31, AuthorID: 1}}
	service := &DayService{dayRepo: store, mealRepo: meals, userRepo: testUsers()}

	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	if err := service.AttachMeal(context.Background(), 1, 21, 31, &at); err != nil {
		t.Fatalf("AttachMeal: %v", err)
	}
	if store.lastAttachedMeal != 31 {
		t.Fatalf("expected meal 31 attached, got %d", store.lastAttachedMeal)
	}
	if store.lastMealTime == nil || !store.lastMealTime.Equal(at) {
		t.Fatalf("unexpected meal time: %v", store.lastMealTime)
	}
}

func TestDayServiceAttachMealRejectsForeignMeal(t *testing.T) {
	store := &stubDayStore{
		days: map[int64]*models.Day{21: {ID: 21, AuthorID: 1}},
	}
	meals := &stubMealReader{meal: &models.Meal{ID: 31, AuthorID: 2}}
	service := &DayService{dayRepo: store, mealRepo: meals, userRepo: testUsers()}

	if err := service.AttachMeal(context.Background(), 1, 21, 31, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	meals.meal = nil
	meals.err = pgx.ErrNoRows
	if err := service.AttachMeal(context.Background(), 1, 21, 31, nil); !errors.Is(err, ErrMealNotFound) {
		t.Fatalf("expected ErrMealNotFound, got %v", err)
	}
}

func TestDayServiceAttachMealTwice(t *testing.T) {
	store := &stubDayStore{
		days:          map[int64]*models.Day{21: {ID: 21, AuthorID: 1}},
		attachMealErr: uniqueViolation(),
	}
	meals := &stubMealReader{meal: &models.Meal{ID: 31, AuthorID: 1}}
	service := &DayService{dayRepo: store, mealRepo: meals, userRepo: testUsers()}

	if err := service.AttachMeal(context.Background(), 1, 21, 31, nil); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestDayServiceAttachTraining(t *testing.T) {
	store := &stubDayStore{
		days: map[int64]*models.Day{21: {ID: 21, AuthorID: 1}},
	}
	trainings := &stubTrainingReader{training: &models.Training{ID: 41, AuthorID: 1}}
	service := &DayService{dayRepo: store, trainingRepo: trainings, userRepo: testUsers()}

	if err := service.AttachTraining(context.Background(), 1, 21, 41, nil); err != nil {
		t.Fatalf("AttachTraining: %v", err)
	}

	trainings.training = &models.Training{ID: 41, AuthorID: 2}
	if err := service.AttachTraining(context.Background(), 1, 21, 41, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDayServiceSetMealCompleted(t *testing.T) {
	store := &stubDayStore{
		days: map[int64]*models.Day{21: {ID: 21, AuthorID: 1}},
	}
	service := &DayService{dayRepo: store, userRepo: testUsers()}

	if err := service.SetMealCompleted(context.Background(), 1, 21, 31, true); err != nil {
		t.Fatalf("SetMealCompleted: %v", err)
	}
	if !store.lastCompleted {
		t.Fatalf("expected completed flag recorded")
	}

	store.setCompletedErr = pgx.ErrNoRows
	if err := service.SetMealCompleted(context.Background(), 1, 21, 31, false); !errors.Is(err, ErrMealNotFound) {
		t.Fatalf("expected ErrMealNotFound for unattached meal, got %v", err)
	}
}
