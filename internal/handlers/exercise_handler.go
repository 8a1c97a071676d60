package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/Bleedaxe/HealthBlog/internal/models"
	"github.com/Bleedaxe/HealthBlog/internal/services"
)

type exerciseApplicationService interface {
	Create(ctx context.Context, authorID int64, input services.CreateExerciseInput) (*models.Exercise, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]models.Exercise, error)
	Get(ctx context.Context, actorID, exerciseID int64) (*models.Exercise, error)
}

type ExerciseHandler struct {
	service exerciseApplicationService
}

func NewExerciseHandler(service exerciseApplicationService) *ExerciseHandler {
	return &ExerciseHandler{service: service}
}

type createExerciseRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	TargetMuscle string  `json:"target_muscle"`
}

func (h *ExerciseHandler) CreateExercise(c *fiber.Ctx) error {
	authorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if msg := validateCreateExerciseRequest(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	exercise, err := h.service.Create(c.Context(), authorID, services.CreateExerciseInput{
		Name:         req.Name,
		Description:  req.Description,
		TargetMuscle: req.TargetMuscle,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"exercise": exercise})
}

func (h *ExerciseHandler) ListExercises(c *fiber.Ctx) error {
	authorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	exercises, err := h.service.ListByAuthor(c.Context(), authorID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"exercises": exercises})
}

func (h *ExerciseHandler) GetExercise(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	exerciseID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	exercise, err := h.service.Get(c.Context(), actorID, exerciseID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"exercise": exercise})
}
