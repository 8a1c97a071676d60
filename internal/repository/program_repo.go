package repository

import (
	"context"
	"time"

	"github.com/Bleedaxe/HealthBlog/internal/models"
)

type CreateProgramInput struct {
	AuthorID     int64
	Name         string
	Type         string
	Description  *string
	DurationDays int
	Price        float64
	IsForSale    bool
}

type ProgramMarketFilter struct {
	ExcludedIDs []int64
	Search      string
	Offset      int
	Limit       int
}

type ProgramRepository struct {
	db DBTX
}

func NewProgramRepository(db DBTX) *ProgramRepository {
	return &ProgramRepository{db: db}
}

func (r *ProgramRepository) Create(ctx context.Context, input CreateProgramInput) (*models.Program, error) {
	query := `
		INSERT INTO programs (author_id, name, type, description, duration_days, price, is_for_sale)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, author_id, name, type, description, duration_days, price, is_for_sale, created_at
	`

	var program models.Program
	err := r.db.QueryRow(
		ctx,
		query,
		input.AuthorID,
		input.Name,
		input.Type,
		input.Description,
		input.DurationDays,
		input.Price,
		input.IsForSale,
	).Scan(
		&program.ID,
		&program.AuthorID,
		&program.Name,
		&program.Type,
		&program.Description,
		&program.DurationDays,
		&program.Price,
		&program.IsForSale,
		&program.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *ProgramRepository) GetByID(ctx context.Context, programID int64) (*models.Program, error) {
	query := `
		SELECT id, author_id, name, type, description, duration_days, price, is_for_sale, created_at
		FROM programs
		WHERE id = $1
	`

	var program models.Program
	err := r.db.QueryRow(ctx, query, programID).Scan(
		&program.ID,
		&program.AuthorID,
		&program.Name,
		&program.Type,
		&program.Description,
		&program.DurationDays,
		&program.Price,
		&program.IsForSale,
		&program.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *ProgramRepository) GetByAuthorAndName(ctx context.Context, authorID int64, name string) (*models.Program, error) {
	query := `
		SELECT id, author_id, name, type, description, duration_days, price, is_for_sale, created_at
		FROM programs
		WHERE author_id = $1 AND name = $2
	`

	var program models.Program
	err := r.db.QueryRow(ctx, query, authorID, name).Scan(
		&program.ID,
		&program.AuthorID,
		&program.Name,
		&program.Type,
		&program.Description,
		&program.DurationDays,
		&program.Price,
		&program.IsForSale,
		&program.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &program, nil
}

// ListForSale returns for-sale programs the viewer has no claim on, with
// author data and day counts, newest first. An empty search matches all.
func (r *ProgramRepository) ListForSale(ctx context.Context, filter ProgramMarketFilter) ([]models.ProgramOffer, int, error) {
	query := `
		SELECT p.id, p.author_id, p.name, p.type, p.description, p.duration_days, p.price, p.is_for_sale, p.created_at,
			u.username, u.full_name,
			(SELECT COUNT(*) FROM program_days pd WHERE pd.program_id = p.id) AS day_count,
			COUNT(*) OVER () AS total
		FROM programs p
		JOIN users u ON u.id = p.author_id
		WHERE p.is_for_sale
			AND p.id <> ALL($1)
			AND ($2 = '' OR
				p.name ILIKE '%' || $2 || '%' OR
				p.type ILIKE '%' || $2 || '%' OR
				u.username ILIKE '%' || $2 || '%' OR
				u.full_name ILIKE '%' || $2 || '%')
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $3 OFFSET $4
	`

	excluded := filter.ExcludedIDs
	if excluded == nil {
		excluded = []int64{}
	}

	rows, err := r.db.Query(ctx, query, excluded, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	offers := make([]models.ProgramOffer, 0)
	total := 0
	for rows.Next() {
		var offer models.ProgramOffer
		if err := rows.Scan(
			&offer.ID,
			&offer.AuthorID,
			&offer.Name,
			&offer.Type,
			&offer.Description,
			&offer.DurationDays,
			&offer.Price,
			&offer.IsForSale,
			&offer.CreatedAt,
			&offer.AuthorUsername,
			&offer.AuthorFullName,
			&offer.DayCount,
			&total,
		); err != nil {
			return nil, 0, err
		}
		offers = append(offers, offer)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return offers, total, nil
}

// ListCreatedByAuthor returns programs the user authored, skipping the
// reserved per-user program when excludeName is non-empty.
func (r *ProgramRepository) ListCreatedByAuthor(ctx context.Context, authorID int64, excludeName string) ([]models.ProgramSummary, error) {
	query := `
		SELECT p.id, p.author_id, p.name, p.type, p.description, p.duration_days, p.price, p.is_for_sale, p.created_at,
			(SELECT COUNT(*) FROM program_days pd WHERE pd.program_id = p.id) AS day_count
		FROM programs p
		WHERE p.author_id = $1 AND ($2 = '' OR p.name <> $2)
		ORDER BY p.created_at DESC, p.id DESC
	`

	rows, err := r.db.Query(ctx, query, authorID, excludeName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.ProgramSummary, 0)
	for rows.Next() {
		var summary models.ProgramSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.AuthorID,
			&summary.Name,
			&summary.Type,
			&summary.Description,
			&summary.DurationDays,
			&summary.Price,
			&summary.IsForSale,
			&summary.CreatedAt,
			&summary.DayCount,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// ListOwned returns programs the user purchased, with the author's username
// and the purchase start date.
func (r *ProgramRepository) ListOwned(ctx context.Context, userID int64) ([]models.ProgramSummary, error) {
	query := `
		SELECT p.id, p.author_id, p.name, p.type, p.description, p.duration_days, p.price, p.is_for_sale, p.created_at,
			u.username,
			(SELECT COUNT(*) FROM program_days pd WHERE pd.program_id = p.id) AS day_count,
			up.started_on
		FROM user_programs up
		JOIN programs p ON p.id = up.program_id
		JOIN users u ON u.id = p.author_id
		WHERE up.user_id = $1
		ORDER BY up.started_on DESC, p.id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.ProgramSummary, 0)
	for rows.Next() {
		var summary models.ProgramSummary
		var startedOn time.Time
		if err := rows.Scan(
			&summary.ID,
			&summary.AuthorID,
			&summary.Name,
			&summary.Type,
			&summary.Description,
			&summary.DurationDays,
			&summary.Price,
			&summary.IsForSale,
			&summary.CreatedAt,
			&summary.Author,
			&summary.DayCount,
			&startedOn,
		); err != nil {
			return nil, err
		}
		summary.StartedOn = &startedOn
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// ListAccessibleIDs returns the ids of every program the user authored or
// purchased. This is the one authorization set both read and write paths use.
func (r *ProgramRepository) ListAccessibleIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `
		SELECT id FROM programs WHERE author_id = $1
		UNION
		SELECT program_id FROM user_programs WHERE user_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *ProgramRepository) AddOwnership(ctx context.Context, userID, programID int64) (*models.UserProgram, error) {
	query := `
		INSERT INTO user_programs (user_id, program_id)
		VALUES ($1, $2)
		RETURNING user_id, program_id, started_on
	`

	var ownership models.UserProgram
	err := r.db.QueryRow(ctx, query, userID, programID).Scan(
		&ownership.UserID,
		&ownership.ProgramID,
		&ownership.StartedOn,
	)
	if err != nil {
		return nil, err
	}
	return &ownership, nil
}

func (r *ProgramRepository) AttachDay(ctx context.Context, programID, dayID int64, scheduledOn *time.Time) error {
	query := `
		INSERT INTO program_days (program_id, day_id, scheduled_on)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, programID, dayID, scheduledOn)
	return err
}

// ListDays returns the program's days in schedule order, without their meal
// and training entries.
func (r *ProgramRepository) ListDays(ctx context.Context, programID int64) ([]models.ProgramDayDetail, error) {
	query := `
		SELECT d.id, d.author_id, d.name, d.created_at, pd.scheduled_on
		FROM program_days pd
		JOIN days d ON d.id = pd.day_id
		WHERE pd.program_id = $1
		ORDER BY pd.scheduled_on NULLS LAST, d.id
	`

	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]models.ProgramDayDetail, 0)
	for rows.Next() {
		var day models.ProgramDayDetail
		if err := rows.Scan(
			&day.ID,
			&day.AuthorID,
			&day.Name,
			&day.CreatedAt,
			&day.ScheduledOn,
		); err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return days, nil
}
