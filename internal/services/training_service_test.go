package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/Bleedaxe/HealthBlog/internal/models"
	"github.com/Bleedaxe/HealthBlog/internal/repository"
)

type stubTrainingStore struct {
	createResult *models.Training
	createErr    error
	lastCreate   repository.CreateTrainingInput

	trainings map[int64]*models.Training
	list      []models.Training

	exercises []models.ExerciseEntry

	attachErr    error
	lastReps     int
	lastSeries   int
	lastExercise int64
}

func (s *stubTrainingStore) Create(_ context.Context, input repository.CreateTrainingInput) (*models.Training, error) {
	s.lastCreate = input
	return s.createResult, s.createErr
}

func (s *stubTrainingStore) GetByID(_ context.Context, trainingID int64) (*models.Training, error) {
	training, ok := s.trainings[trainingID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return training, nil
}

func (s *stubTrainingStore) ListByAuthor(_ context.Context, _ int64) ([]models.Training, error) {
	return s.list, nil
}

func (s *stubTrainingStore) AttachExercise(_ context.Context, _, exerciseID int64, repetitions, series int) error {
	s.lastExercise = exerciseID
	s.lastReps = repetitions
	s.lastSeries = series
	return s.attachErr
}

func (s *stubTrainingStore) ListExercises(_ context.Context, _ int64) ([]models.ExerciseEntry, error) {
	return s.exercises, nil
}

type stubExerciseReader struct {
	exercise *models.Exercise
	err      error
}

func (r *stubExerciseReader) GetByID(_ context.Context, _ int64) (*models.Exercise, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.exercise, nil
}

func TestTrainingServiceCreateTrimsInput(t *testing.T) {
	store := &stubTrainingStore{
		createResult: &models.Training{ID: 41, AuthorID: 1, Name: "Push"},
	}
	service := &TrainingService{trainingRepo: store, userRepo: testUsers()}

	training, err := service.Create(context.Background(), 1, CreateTrainingInput{
		Name:        "  Push  ",
		Type:        "Strength",
		Description: "Chest and triceps",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if training.ID != 41 {
		t.Fatalf("expected training 41, got %d", training.ID)
	}
	if store.lastCreate.Name != "Push" {
		t.Fatalf("expected trimmed name, got %q", store.lastCreate.Name)
	}

	_, err = service.Create(context.Background(), 1, CreateTrainingInput{Name: "Push", Type: "Strength"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank description, got %v", err)
	}
}

func TestTrainingServiceGetLoadsExercises(t *testing.T) {
	store := &stubTrainingStore{
		trainings: map[int64]*models.Training{41: {ID: 41, AuthorID: 1, Name: "Push"}},
		exercises: []models.ExerciseEntry{
			{Exercise: models.Exercise{ID: 51, Name: "Bench press"}, Repetitions: 8, Series: 4},
		},
	}
	service := &TrainingService{trainingRepo: store, userRepo: testUsers()}

	detail, err := service.Get(context.Background(), 1, 41)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(detail.Exercises) != 1 || detail.Exercises[0].Repetitions != 8 {
		t.Fatalf("unexpected exercises: %+v", detail.Exercises)
	}

	if _, err := service.Get(context.Background(), 2, 41); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign training, got %v", err)
	}
}

func TestTrainingServiceAttachExercise(t *testing.T) {
	store := &stubTrainingStore{
		trainings: map[int64]*models.Training{41: {ID: 41, AuthorID: 1}},
	}
	exercises := &stubExerciseReader{exercise: &models.Exercise{ID: 51, AuthorID: 1}}
	service := &TrainingService{trainingRepo: store, exerciseRepo: exercises, userRepo: testUsers()}

	if err := service.AttachExercise(context.Background(), 1, 41, 51, 8, 4); err != nil {
		t.Fatalf("AttachExercise: %v", err)
	}
	if store.lastExercise != 51 || store.lastReps != 8 || store.lastSeries != 4 {
		t.Fatalf("unexpected attach args: exercise %d reps %d series %d",
			store.lastExercise, store.lastReps, store.lastSeries)
	}
}

func TestTrainingServiceAttachExerciseRejectsBadVolume(t *testing.T) {
	service := &TrainingService{trainingRepo: &stubTrainingStore{}, userRepo: testUsers()}

	if err := service.AttachExercise(context.Background(), 1, 41, 51, 0, 4); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero repetitions, got %v", err)
	}
	if err := service.AttachExercise(context.Background(), 1, 41, 51, 8, -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative series, got %v", err)
	}
}

func TestTrainingServiceAttachExerciseChecksOwnership(t *testing.T) {
	store := &stubTrainingStore{
		trainings: map[int64]*models.Training{41: {ID: 41, AuthorID: 1}},
	}
	exercises := &stubExerciseReader{exercise: &models.Exercise{ID: 51, AuthorID: 2}}
	service := &TrainingService{trainingRepo: store, exerciseRepo: exercises, userRepo: testUsers()}

	if err := service.AttachExercise(context.Background(), 1, 41, 51, 8, 4); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign exercise, got %v", err)
	}

	exercises.exercise = nil
	exercises.err = pgx.ErrNoRows
	if err := service.AttachExercise(context.Background(), 1, 41, 51, 8, 4); !errors.Is(err, ErrExerciseNotFound) {
		t.Fatalf("expected ErrExerciseNotFound, got %v", err)
	}

	if err := service.AttachExercise(context.Background(), 1, 99, 51, 8, 4); !errors.Is(err, ErrTrainingNotFound) {
		t.Fatalf("expected ErrTrainingNotFound, got %v", err)
	}
}

func TestTrainingServiceAttachExerciseTwice(t *testing.T) {
	store := &stubTrainingStore{
		trainings: map[int64]*models.Training{41: {ID: 41, AuthorID: 1}},
		attachErr: uniqueViolation(),
	}
	exercises := &stubExerciseReader{exercise: &models.Exercise{ID: 51, AuthorID: 1}}
	service := &TrainingService{trainingRepo: store, exerciseRepo: exercises, userRepo: testUsers()}

	if err := service.AttachExercise(context.Background(), 1, 41, 51, 8, 4); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
