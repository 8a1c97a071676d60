package repository

import (
	"context"

	"github.com/Bleedaxe/HealthBlog/internal/models"
)

type CreateTrainingInput struct {
	AuthorID    int64
	Name        string
	Type        string
	Description string
}

type TrainingRepository struct {
	db DBTX
}

func NewTrainingRepository(db DBTX) *TrainingRepository {
	return &TrainingRepository{db: db}
}

func (r *TrainingRepository) Create(ctx context.Context, input CreateTrainingInput) (*models.Training, error) {
	query := `
		INSERT INTO trainings (author_id, name, type, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, author_id, name, type, description, created_at
	`

	var training models.Training
	err := r.db.QueryRow(ctx, query, input.AuthorID, input.Name, input.Type, input.Description).Scan(
		&training.ID,
		&training.AuthorID,
		&training.Name,
		&training.Type,
		&training.Description,
		&training.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &training, nil
}

func (r *TrainingRepository) GetByID(ctx context.Context, trainingID int64) (*models.Training, error) {
	query := `
		SELECT id, author_id, name, type, description, created_at
		FROM trainings
		WHERE id = $1
	`

	var training models.Training
	err := r.db.QueryRow(ctx, query, trainingID).Scan(
		&training.ID,
		&training.AuthorID,
		&training.Name,
		&training.Type,
		&training.Description,
		&training.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &training, nil
}

func (r *TrainingRepository) ListByAuthor(ctx context.Context, authorID int64) ([]models.Training, error) {
	query := `
		SELECT id, author_id, name, type, description, created_at
		FROM trainings
		WHERE author_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trainings := make([]models.Training, 0)
	for rows.Next() {
		var training models.Training
		if err := rows.Scan(
			&training.ID,
			&training.AuthorID,
			&training.Name,
			&training.Type,
			&training.Description,
			&training.CreatedAt,
		); err != nil {
			return nil, err
		}
		trainings = append(trainings, training)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trainings, nil
}

func (r *TrainingRepository) AttachExercise(ctx context.Context, trainingID, exerciseID int64, repetitions, series int) error {
	query := `
		INSERT INTO training_exercises (training_id, exercise_id, repetitions, series)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, trainingID, exerciseID, repetitions, series)
	return err
}

func (r *TrainingRepository) ListExercises(ctx context.Context, trainingID int64) ([]models.ExerciseEntry, error) {
	query := `
		SELECT e.id, e.author_id, e.name, e.description, e.target_muscle, e.created_at, te.repetitions, te.series
		FROM training_exercises te
		JOIN exercises e ON e.id = te.exercise_id
		WHERE te.training_id = $1
		ORDER BY e.id
	`

	rows, err := r.db.Query(ctx, query, trainingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.ExerciseEntry, 0)
	for rows.Next() {
		var entry models.ExerciseEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.AuthorID,
			&entry.Name,
			&entry.Description,
			&entry.TargetMuscle,
			&entry.CreatedAt,
			&entry.Repetitions,
			&entry.Series,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
