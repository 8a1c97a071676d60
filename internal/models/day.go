package models

import "time"

// Day is a reusable template of meals and trainings. The same day may be
// attached to any number of programs.
type Day struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type DayDetail struct {
	Day
	Meals     []MealEntry     `json:"meals"`
	Trainings []TrainingEntry `json:"trainings"`
}
