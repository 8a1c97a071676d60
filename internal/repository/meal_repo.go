package repository

import (
	"context"

	"github.com/Bleedaxe/HealthBlog/internal/models"
)

type MealRepository struct {
	db DBTX
}

func NewMealRepository(db DBTX) *MealRepository {
	return &MealRepository{db: db}
}

func (r *MealRepository) Create(ctx context.Context, authorID int64, name, description string) (*models.Meal, error) {
	query := `
		INSERT INTO meals (author_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, author_id, name, description, created_at
	`

	var meal models.Meal
	err := r.db.QueryRow(ctx, query, authorID, name, description).Scan(
		&meal.ID,
		&meal.AuthorID,
		&meal.Name,
		&meal.Description,
		&meal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *MealRepository) GetByID(ctx context.Context, mealID int64) (*models.Meal, error) {
	query := `
		SELECT id, author_id, name, description, created_at
		FROM meals
		WHERE id = $1
	`

	var meal models.Meal
	err := r.db.QueryRow(ctx, query, mealID).Scan(
		&meal.ID,
		&meal.AuthorID,
		&meal.Name,
		&meal.Description,
		&meal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *MealRepository) ListByAuthor(ctx context.Context, authorID int64) ([]models.Meal, error) {
	query := `
		SELECT id, author_id, name, description, created_at
		FROM meals
		WHERE author_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meals := make([]models.Meal, 0)
	for rows.Next() {
		var meal models.Meal
		if err := rows.Scan(&meal.ID, &meal.AuthorID, &meal.Name, &meal.Description, &meal.CreatedAt); err != nil {
			return nil, err
		}
		meals = append(meals, meal)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return meals, nil
}
