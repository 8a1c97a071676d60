package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Bleedaxe/HealthBlog/internal/models"
	"github.com/Bleedaxe/HealthBlog/internal/repository"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrProgramNotFound  = errors.New("program not found")
	ErrDayNotFound      = errors.New("day not found")
	ErrMealNotFound     = errors.New("meal not found")
	ErrTrainingNotFound = errors.New("training not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrInvalidInput     = errors.New("invalid input")
)

// Reserved per-user program, provisioned at registration and hidden from the
// user's own program listing.
const (
	DefaultProgramName        = "Personal plan"
	DefaultProgramType        = "Personal"
	DefaultProgramDescription = "Scratch plan for your day-to-day meals and trainings."
)

// selfAuthorLabel replaces the author's username on programs the viewer
// created themselves.
const selfAuthorLabel = "You"

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type programStore interface {
	Create(ctx context.Context, input repository.CreateProgramInput) (*models.Program, error)
	GetByID(ctx context.Context, programID int64) (*models.Program, error)
	GetByAuthorAndName(ctx context.Context, authorID int64, name string) (*models.Program, error)
	ListForSale(ctx context.Context, filter repository.ProgramMarketFilter) ([]models.ProgramOffer, int, error)
	ListCreatedByAuthor(ctx context.Context, authorID int64, excludeName string) ([]models.ProgramSummary, error)
	ListOwned(ctx context.Context, userID int64) ([]models.ProgramSummary, error)
	ListAccessibleIDs(ctx context.Context, userID int64) ([]int64, error)
	AddOwnership(ctx context.Context, userID, programID int64) (*models.UserProgram, error)
	AttachDay(ctx context.Context, programID, dayID int64, scheduledOn *time.Time) error
	ListDays(ctx context.Context, programID int64) ([]models.ProgramDayDetail, error)
}

// defaultProgramStore is the slice of programStore the default-program
// provisioning needs. It is satisfied by a ProgramRepository over the pool or
// over a transaction.
type defaultProgramStore interface {
	Create(ctx context.Context, input repository.CreateProgramInput) (*models.Program, error)
	GetByAuthorAndName(ctx context.Context, authorID int64, name string) (*models.Program, error)
}

type dayEntryStore interface {
	GetByID(ctx context.Context, dayID int64) (*models.Day, error)
	ListMealsByDayIDs(ctx context.Context, dayIDs []int64) (map[int64][]models.MealEntry, error)
	ListTrainingsByDayIDs(ctx context.Context, dayIDs []int64) (map[int64][]models.TrainingEntry, error)
}

type ProgramService struct {
	programRepo programStore
	dayRepo     dayEntryStore
	userRepo    userReader
}

func NewProgramService(
	programRepo *repository.ProgramRepository,
	dayRepo *repository.DayRepository,
	userRepo userReader,
) *ProgramService {
	return &ProgramService{
		programRepo: programRepo,
		dayRepo:     dayRepo,
		userRepo:    userRepo,
	}
}

type CreateProgramInput struct {
	Name         string
	Type         string
	Description  *string
	DurationDays int
	Price        float64
	IsForSale    bool
}

func (s *ProgramService) Create(
	ctx context.Context,
	authorID int64,
	input CreateProgramInput,
) (*models.Program, error) {
	if _, err := s.resolveUser(ctx, authorID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	programType := strings.TrimSpace(input.Type)
	if name == "" || programType == "" {
		return nil, ErrInvalidInput
	}
	if input.DurationDays <= 0 || input.Price < 0 {
		return nil, ErrInvalidInput
	}

	var description *string
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed == "" {
			return nil, ErrInvalidInput
		}
		description = &trimmed
	}

	program, err := s.programRepo.Create(ctx, repository.CreateProgramInput{
		AuthorID:     authorID,
		Name:         name,
		Type:         programType,
		Description:  description,
		DurationDays: input.DurationDays,
		Price:        input.Price,
		IsForSale:    input.IsForSale,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return program, nil
}

// ListForSale returns the purchasable market for the viewer: every for-sale
// program except those the viewer authored or already owns, regardless of
// their for-sale flag.
func (s *ProgramService) ListForSale(
	ctx context.Context,
	viewerID int64,
	search string,
	page int,
	limit int,
) ([]models.ProgramOffer, int, error) {
	if page <= 0 || limit <= 0 {
		return nil, 0, ErrInvalidInput
	}
	if _, err := s.resolveUser(ctx, viewerID); err != nil {
		return nil, 0, err
	}

	excluded, err := s.programRepo.ListAccessibleIDs(ctx, viewerID)
	if err != nil {
		return nil, 0, err
	}

	return s.programRepo.ListForSale(ctx, repository.ProgramMarketFilter{
		ExcludedIDs: excluded,
		Search:      strings.TrimSpace(search),
		Offset:      (page - 1) * limit,
		Limit:       limit,
	})
}

// Buy records the viewer's purchase of a program. Authors cannot buy their
// own programs and a program can be bought at most once.
func (s *ProgramService) Buy(ctx context.Context, programID, buyerID int64) (*models.UserProgram, error) {
	buyer, err := s.resolveUser(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if program.AuthorID == buyer.ID {
		return nil, ErrForbidden
	}

	ownership, err := s.programRepo.AddOwnership(ctx, buyer.ID, program.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return ownership, nil
}

// ListOwnedAndCreated returns the union of the user's authored programs
// (minus the reserved default program, labeled with the self-author marker)
// and the programs they purchased.
func (s *ProgramService) ListOwnedAndCreated(ctx context.Context, userID int64) ([]models.ProgramSummary, error) {
	if _, err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}

	created, err := s.programRepo.ListCreatedByAuthor(ctx, userID, DefaultProgramName)
	if err != nil {
		return nil, err
	}
	for i := range created {
		created[i].Author = selfAuthorLabel
	}

	owned, err := s.programRepo.ListOwned(ctx, userID)
	if err != nil {
		return nil, err
	}

	return append(created, owned...), nil
}

// ValidateOwnership reports whether the user authored or purchased the
// program. It is the single access predicate for program reads.
func (s *ProgramService) ValidateOwnership(ctx context.Context, programID, userID int64) (bool, error) {
	if _, err := s.resolveUser(ctx, userID); err != nil {
		return false, err
	}

	accessible, err := s.programRepo.ListAccessibleIDs(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, id := range accessible {
		if id == programID {
			return true, nil
		}
	}
	return false, nil
}

// GetDetails returns the full nested program: author, days in schedule order,
// each day's meals and trainings. The viewer must have authored or purchased
// the program.
func (s *ProgramService) GetDetails(ctx context.Context, viewerID, programID int64) (*models.ProgramDetail, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}

	allowed, err := s.ValidateOwnership(ctx, programID, viewerID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrForbidden
	}

	author, err := s.userRepo.GetByID(ctx, program.AuthorID)
	if err != nil {
		return nil, err
	}

	days, err := s.loadDays(ctx, program.ID)
	if err != nil {
		return nil, err
	}

	return &models.ProgramDetail{
		Program:            *program,
		Author:             author.Username,
		IsAuthoredByViewer: program.AuthorID == viewerID,
		Days:               days,
	}, nil
}

// AttachDay adds one of the author's days to one of the author's programs.
func (s *ProgramService) AttachDay(
	ctx context.Context,
	authorID int64,
	programID int64,
	dayID int64,
	scheduledOn *time.Time,
) error {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProgramNotFound
		}
		return err
	}
	if program.AuthorID != authorID {
		return ErrForbidden
	}

	day, err := s.dayRepo.GetByID(ctx, dayID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrDayNotFound
		}
		return err
	}
	if day.AuthorID != authorID {
		return ErrForbidden
	}

	if err := s.programRepo.AttachDay(ctx, programID, dayID, scheduledOn); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// GetDefaultProgram is a pure lookup of the reserved per-user program, with
// its days loaded. It never creates anything; provisioning happens at
// registration via EnsureDefaultProgram.
func (s *ProgramService) GetDefaultProgram(ctx context.Context, userID int64) (*models.ProgramDetail, error) {
	if _, err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}

	program, err := s.programRepo.GetByAuthorAndName(ctx, userID, DefaultProgramName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}

	days, err := s.loadDays(ctx, program.ID)
	if err != nil {
		return nil, err
	}

	return &models.ProgramDetail{
		Program:            *program,
		Author:             selfAuthorLabel,
		IsAuthoredByViewer: true,
		Days:               days,
	}, nil
}

// EnsureDefaultProgram provisions the reserved program if it is missing.
// Safe to call repeatedly; a concurrent double-create resolves through the
// unique (author_id, name) index.
func (s *ProgramService) EnsureDefaultProgram(ctx context.Context, userID int64) (*models.Program, error) {
	if _, err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	return EnsureDefaultProgram(ctx, s.programRepo, userID)
}

// EnsureDefaultProgram is the provisioning step itself, callable against a
// transaction-scoped repository. Registration runs it inside the transaction
// that creates the user so the reserved program exists before the first read.
func EnsureDefaultProgram(ctx context.Context, programs defaultProgramStore, userID int64) (*models.Program, error) {
	program, err := programs.GetByAuthorAndName(ctx, userID, DefaultProgramName)
	if err == nil {
		return program, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	description := DefaultProgramDescription
	program, err = programs.Create(ctx, repository.CreateProgramInput{
		AuthorID:     userID,
		Name:         DefaultProgramName,
		Type:         DefaultProgramType,
		Description:  &description,
		DurationDays: 1,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return programs.GetByAuthorAndName(ctx, userID, DefaultProgramName)
		}
		return nil, err
	}
	return program, nil
}

func (s *ProgramService) loadDays(ctx context.Context, programID int64) ([]models.ProgramDayDetail, error) {
	days, err := s.programRepo.ListDays(ctx, programID)
	if err != nil {
		return nil, err
	}

	dayIDs := make([]int64, 0, len(days))
	for _, day := range days {
		dayIDs = append(dayIDs, day.ID)
	}

	mealsByDay, err := s.dayRepo.ListMealsByDayIDs(ctx, dayIDs)
	if err != nil {
		return nil, err
	}
	trainingsByDay, err := s.dayRepo.ListTrainingsByDayIDs(ctx, dayIDs)
	if err != nil {
		return nil, err
	}

	for i := range days {
		days[i].Meals = emptyIfNilMeals(mealsByDay[days[i].ID])
		days[i].Trainings = emptyIfNilTrainings(trainingsByDay[days[i].ID])
	}
	return days, nil
}

func (s *ProgramService) resolveUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func emptyIfNilMeals(entries []models.MealEntry) []models.MealEntry {
	if entries == nil {
		return []models.MealEntry{}
	}
	return entries
}

func emptyIfNilTrainings(entries []models.TrainingEntry) []models.TrainingEntry {
	if entries == nil {
		return []models.TrainingEntry{}
	}
	return entries
}
