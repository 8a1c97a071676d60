package models

import "time"

type Program struct {
	ID           int64     `json:"id"`
	AuthorID     int64     `json:"author_id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Description  *string   `json:"description,omitempty"`
	DurationDays int       `json:"duration_days"`
	Price        float64   `json:"price"`
	IsForSale    bool      `json:"is_for_sale"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProgramOffer is a for-sale program as shown on the marketplace.
type ProgramOffer struct {
	Program
	AuthorUsername string `json:"author_username"`
	AuthorFullName string `json:"author_full_name"`
	DayCount       int    `json:"day_count"`
}

// ProgramSummary is a program in the viewer's own listing. Author holds the
// author's username for purchased programs and the self-author label for
// programs the viewer created.
type ProgramSummary struct {
	Program
	Author    string     `json:"author"`
	DayCount  int        `json:"day_count"`
	StartedOn *time.Time `json:"started_on,omitempty"`
}

type ProgramDetail struct {
	Program
	Author             string             `json:"author"`
	IsAuthoredByViewer bool               `json:"is_authored_by_viewer"`
	Days               []ProgramDayDetail `json:"days"`
}

type ProgramDayDetail struct {
	Day
	ScheduledOn *time.Time      `json:"scheduled_on,omitempty"`
	Meals       []MealEntry     `json:"meals"`
	Trainings   []TrainingEntry `json:"trainings"`
}

// UserProgram records a purchase: the program stays authored by its creator,
// the buyer only gains access.
type UserProgram struct {
	UserID    int64     `json:"user_id"`
	ProgramID int64     `json:"program_id"`
	StartedOn time.Time `json:"started_on"`
}
