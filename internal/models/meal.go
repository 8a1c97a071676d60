package models

import "time"

type Meal struct {
	ID          int64     `json:"id"`
	AuthorID    int64     `json:"author_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// MealEntry is a meal attached to a day, with the scheduling data the
// association carries.
type MealEntry struct {
	Meal
	MealTime  *time.Time `json:"meal_time,omitempty"`
	Completed bool       `json:"completed"`
}
