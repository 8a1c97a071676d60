package models

import "time"

type Exercise struct {
	ID           int64     `json:"id"`
	AuthorID     int64     `json:"author_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	TargetMuscle string    `json:"target_muscle"`
	CreatedAt    time.Time `json:"created_at"`
}

// ExerciseEntry is an exercise attached to a training, with the volume the
// association carries.
type ExerciseEntry struct {
	Exercise
	Repetitions int `json:"repetitions"`
	Series      int `json:"series"`
}
