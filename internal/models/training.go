package models

import "time"

type Training struct {
	ID          int64     `json:"id"`
	AuthorID    int64     `json:"author_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TrainingEntry is a training attached to a day.
type TrainingEntry struct {
	Training
	TrainingTime *time.Time `json:"training_time,omitempty"`
}

type TrainingDetail struct {
	Training
	Exercises []ExerciseEntry `json:"exercises"`
}
