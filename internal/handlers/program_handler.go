package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Bleedaxe/HealthBlog/internal/models"
	"github.com/Bleedaxe/HealthBlog/internal/services"
)

type programApplicationService interface {
	Create(ctx context.Context, authorID int64, input services.CreateProgramInput) (*models.Program, error)
	ListForSale(ctx context.Context, viewerID int64, search string, page, limit int) ([]models.ProgramOffer, int, error)
	Buy(ctx context.Context, programID, buyerID int64) (*models.UserProgram, error)
	ListOwnedAndCreated(ctx context.Context, userID int64) ([]models.ProgramSummary, error)
	GetDetails(ctx context.Context, viewerID, programID int64) (*models.ProgramDetail, error)
	AttachDay(ctx context.Context, authorID, programID, dayID int64, scheduledOn *time.Time) error
	GetDefaultProgram(ctx context.Context, userID int64) (*models.ProgramDetail, error)
}

type ProgramHandler struct {
	service programApplicationService
}

func NewProgramHandler(service programApplicationService) *ProgramHandler {
	return &ProgramHandler{service: service}
}

type createProgramRequest struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Description  *string `json:"description"`
	DurationDays int     `json:"duration_days"`
	Price        float64 `json:"price"`
	IsForSale    bool    `json:"is_for_sale"`
}

type attachDayRequest struct {
	DayID       int64      `json:"day_id"`
	ScheduledOn *time.Time `json:"scheduled_on"`
}

func (h *ProgramHandler) CreateProgram(c *fiber.Ctx) error {
	authorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if msg := validateCreateProgramRequest(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	program, err := h.service.Create(c.Context(), authorID, services.CreateProgramInput{
		Name:         req.Name,
		Type:         req.Type,
		Description:  req.Description,
		DurationDays: req.DurationDays,
		Price:        req.Price,
		IsForSale:    req.IsForSale,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"program": program})
}

func (h *ProgramHandler) ListMyPrograms(c *fiber.Ctx) error {
	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	programs, err := h.service.ListOwnedAndCreated(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"programs": programs})
}

func (h *ProgramHandler) ListMarket(c *fiber.Ctx) error {
	viewerID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	search := strings.TrimSpace(c.Query("search"))

	offers, total, err := h.service.ListForSale(c.Context(), viewerID, search, page, limit)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"programs":   offers,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *ProgramHandler) BuyProgram(c *fiber.Ctx) error {
	buyerID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	programID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid program id"})
	}

	ownership, err := h.service.Buy(c.Context(), programID, buyerID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ownership": ownership})
}

func (h *ProgramHandler) GetProgram(c *fiber.Ctx) error {
	viewerID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	programID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid program id"})
	}

	detail, err := h.service.GetDetails(c.Context(), viewerID, programID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"program": detail})
}

func (h *ProgramHandler) AttachDay(c *fiber.Ctx) error {
	authorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	programID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid program id"})
	}

	var req attachDayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.DayID <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "day_id must be a positive integer"})
	}

	if err := h.service.AttachDay(c.Context(), authorID, programID, req.DayID, req.ScheduledOn); err != nil {
		return mapServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProgramHandler) GetDefaultProgram(c *fiber.Ctx) error {
	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	detail, err := h.service.GetDefaultProgram(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"program": detail})
}
