package repository

import (
	"context"

	"github.com/Bleedaxe/HealthBlog/internal/models"
)

type CreateExerciseInput struct {
	AuthorID     int64
	Name         string
	Description  *string
	TargetMuscle string
}

type ExerciseRepository struct {
	db DBTX
}

func NewExerciseRepository(db DBTX) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) Create(ctx context.Context, input CreateExerciseInput) (*models.Exercise, error) {
	query := `
		INSERT INTO exercises (author_id, name, description, target_muscle)
		VALUES ($1, $2, $3, $4)
		RETURNING id, author_id, name, description, target_muscle, created_at
	`

	var exercise models.Exercise
	err := r.db.QueryRow(ctx, query, input.AuthorID, input.Name, input.Description, input.TargetMuscle).Scan(
		&exercise.ID,
		&exercise.AuthorID,
		&exercise.Name,
		&exercise.Description,
		&exercise.TargetMuscle,
		&exercise.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *ExerciseRepository) GetByID(ctx context.Context, exerciseID int64) (*models.Exercise, error) {
	query := `
		SELECT id, author_id, name, description, target_muscle, created_at
		FROM exercises
		WHERE id = $1
	`

	var exercise models.Exercise
	err := r.db.QueryRow(ctx, query, exerciseID).Scan(
		&exercise.ID,
		&exercise.AuthorID,
		&exercise.Name,
		&exercise.Description,
		&exercise.TargetMuscle,
		&exercise.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *ExerciseRepository) ListByAuthor(ctx context.Context, authorID int64) ([]models.Exercise, error) {
	query := `
		SELECT id, author_id, name, description, target_muscle, created_at
		FROM exercises
		WHERE author_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]models.Exercise, 0)
	for rows.Next() {
		var exercise models.Exercise
		if err := rows.Scan(
			&exercise.ID,
			&exercise.AuthorID,
			&exercise.Name,
			&exercise.Description,
			&exercise.TargetMuscle,
			&exercise.CreatedAt,
		); err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}
