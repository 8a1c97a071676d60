package repository

import (
	"context"
	"time"

	"github.com/Bleedaxe/HealthBlog/internal/models"
)

type DayRepository struct {
	db DBTX
}

func NewDayRepository(db DBTX) *DayRepository {
	return &DayRepository{db: db}
}

func (r *DayRepository) Create(ctx context.Context, authorID int64, name string) (*models.Day, error) {
	query := `
		INSERT INTO days (author_id, name)
		VALUES ($1, $2)
		RETURNING id, author_id, name, created_at
	`

	var day models.Day
	err := r.db.QueryRow(ctx, query, authorID, name).Scan(
		&day.ID,
		&day.AuthorID,
		&day.Name,
		&day.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *DayRepository) GetByID(ctx context.Context, dayID int64) (*models.Day, error) {
	query := `
		SELECT id, author_id, name, created_at
		FROM days
		WHERE id = $1
	`

	var day models.Day
	err := r.db.QueryRow(ctx, query, dayID).Scan(
		&day.ID,
		&day.AuthorID,
		&day.Name,
		&day.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *DayRepository) ListByAuthor(ctx context.Context, authorID int64) ([]models.Day, error) {
	query := `
		SELECT id, author_id, name, created_at
		FROM days
		WHERE author_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]models.Day, 0)
	for rows.Next() {
		var day models.Day
		if err := rows.Scan(&day.ID, &day.AuthorID, &day.Name, &day.CreatedAt); err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return days, nil
}

func (r *DayRepository) AttachMeal(ctx context.Context, dayID, mealID int64, mealTime *time.Time) error {
	query := `
		INSERT INTO meal_days (day_id, meal_id, meal_time)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, dayID, mealID, mealTime)
	return err
}

func (r *DayRepository) AttachTraining(ctx context.Context, dayID, trainingID int64, trainingTime *time.Time) error {
	query := `
		INSERT INTO training_days (day_id, training_id, training_time)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, dayID, trainingID, trainingTime)
	return err
}

// SetMealCompleted flips the completion flag on a meal/day association.
// Returns pgx.ErrNoRows when the meal is not attached to the day.
func (r *DayRepository) SetMealCompleted(ctx context.Context, dayID, mealID int64, completed bool) error {
	query := `
		UPDATE meal_days
		SET completed = $3
		WHERE day_id = $1 AND meal_id = $2
		RETURNING completed
	`
	var current bool
	return r.db.QueryRow(ctx, query, dayID, mealID, completed).Scan(&current)
}

func (r *DayRepository) ListMealsByDayIDs(ctx context.Context, dayIDs []int64) (map[int64][]models.MealEntry, error) {
	entries := make(map[int64][]models.MealEntry, len(dayIDs))
	if len(dayIDs) == 0 {
		return entries, nil
	}

	query := `
		SELECT md.day_id, m.id, m.author_id, m.name, m.description, m.created_at, md.meal_time, md.completed
		FROM meal_days md
		JOIN meals m ON m.id = md.meal_id
		WHERE md.day_id = ANY($1)
		ORDER BY md.meal_time NULLS LAST, m.id
	`

	rows, err := r.db.Query(ctx, query, dayIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var dayID int64
		var entry models.MealEntry
		if err := rows.Scan(
			&dayID,
			&entry.ID,
			&entry.AuthorID,
			&entry.Name,
			&entry.Description,
			&entry.CreatedAt,
			&entry.MealTime,
			&entry.Completed,
		); err != nil {
			return nil, err
		}
		entries[dayID] = append(entries[dayID], entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *DayRepository) ListTrainingsByDayIDs(ctx context.Context, dayIDs []int64) (map[int64][]models.TrainingEntry, error) {
	entries := make(map[int64][]models.TrainingEntry, len(dayIDs))
	if len(dayIDs) == 0 {
		return entries, nil
	}

	query := `
		SELECT td.day_id, t.id, t.author_id, t.name, t.type, t.description, t.created_at, td.training_time
		FROM training_days td
		JOIN trainings t ON t.id = td.training_id
		WHERE td.day_id = ANY($1)
		ORDER BY td.training_time NULLS LAST, t.id
	`

	rows, err := r.db.Query(ctx, query, dayIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var dayID int64
		var entry models.TrainingEntry
		if err := rows.Scan(
			&dayID,
			&entry.ID,
			&entry.AuthorID,
			&entry.Name,
			&entry.Type,
			&entry.Description,
			&entry.CreatedAt,
			&entry.TrainingTime,
		); err != nil {
			return nil, err
		}
		entries[dayID] = append(entries[dayID], entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
