package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Bleedaxe/HealthBlog/internal/models"
)

type dayApplicationService interface {
	Create(ctx context.Context, authorID int64, name string) (*models.Day, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]models.Day, error)
	Get(ctx context.Context, actorID, dayID int64) (*models.DayDetail, error)
	AttachMeal(ctx context.Context, actorID, dayID, mealID int64, mealTime *time.Time) error
	AttachTraining(ctx context.Context, actorID, dayID, trainingID int64, trainingTime *time.Time) error
	SetMealCompleted(ctx context.Context, actorID, dayID, mealID int64, completed bool) error
}

type DayHandler struct {
	service dayApplicationService
}

func NewDayHandler(service dayApplicationService) *DayHandler {
	return &DayHandler{service: service}
}

type createDayRequest struct {
	Name string `json:"name"`
}

type attachMealRequest struct {
	MealID   int64      `json:"meal_id"`
	MealTime *time.Time `json:"meal_time"`
}

type attachTrainingRequest struct {
	TrainingID   int64      `json:"training_id"`
	TrainingTime *time.Time `json:"training_time"`
}

type completeMealRequest struct {
	Completed bool `json:"completed"`
}

func (h *DayHandler) CreateDay(c *fiber.Ctx) error {
	authorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createDayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if msg := validateCreateDayRequest(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	day, err := h.service.Create(c.Context(), authorID, req.Name)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"day": day})
}

func (h *DayHandler) ListDays(c *fiber.Ctx) error {
	authorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	days, err := h.service.ListByAuthor(c.Context(), authorID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"days": days})
}

func (h *DayHandler) GetDay(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	dayID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day id"})
	}

	detail, err := h.service.Get(c.Context(), actorID, dayID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"day": detail})
}

func (h *DayHandler) AttachMeal(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	dayID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day id"})
	}

	var req attachMealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.MealID <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "meal_id must be a positive integer"})
	}

	if err := h.service.AttachMeal(c.Context(), actorID, dayID, req.MealID, req.MealTime); err != nil {
		return mapServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *DayHandler) AttachTraining(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	dayID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day id"})
	}

	var req attachTrainingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.TrainingID <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "training_id must be a positive integer"})
	}

	if err := h.service.AttachTraining(c.Context(), actorID, dayID, req.TrainingID, req.TrainingTime); err != nil {
		return mapServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *DayHandler) SetMealCompleted(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	dayID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid day id"})
	}
	mealID, err := parseIDParam(c, "mealId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid meal id"})
	}

	var req completeMealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.SetMealCompleted(c.Context(), actorID, dayID, mealID, req.Completed); err != nil {
		return mapServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
