package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/Bleedaxe/HealthBlog/internal/models"
	"github.com/Bleedaxe/HealthBlog/internal/services"
)

type trainingApplicationService interface {
	Create(ctx context.Context, authorID int64, input services.CreateTrainingInput) (*models.Training, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]models.Training, error)
	Get(ctx context.Context, actorID, trainingID int64) (*models.TrainingDetail, error)
	AttachExercise(ctx context.Context, actorID, trainingID, exerciseID int64, repetitions, series int) error
}

type TrainingHandler struct {
	service trainingApplicationService
}

func NewTrainingHandler(service trainingApplicationService) *TrainingHandler {
	return &TrainingHandler{service: service}
}

type createTrainingRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type attachExerciseRequest struct {
	ExerciseID  int64 `json:"exercise_id"`
	Repetitions int   `json:"repetitions"`
	Series      int   `json:"series"`
}

func (h *TrainingHandler) CreateTraining(c *fiber.Ctx) error {
	authorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createTrainingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if msg := validateCreateTrainingRequest(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	training, err := h.service.Create(c.Context(), authorID, services.CreateTrainingInput{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"training": training})
}

func (h *TrainingHandler) ListTrainings(c *fiber.Ctx) error {
	authorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	trainings, err := h.service.ListByAuthor(c.Context(), authorID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"trainings": trainings})
}

func (h *TrainingHandler) GetTraining(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	trainingID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid training id"})
	}

	detail, err := h.service.Get(c.Context(), actorID, trainingID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"training": detail})
}

func (h *TrainingHandler) AttachExercise(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	trainingID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid training id"})
	}

	var req attachExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ExerciseID <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "exercise_id must be a positive integer"})
	}
	if req.Repetitions <= 0 || req.Series <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "repetitions and series must be greater than 0"})
	}

	if err := h.service.AttachExercise(
		c.Context(),
		actorID,
		trainingID,
		req.ExerciseID,
		req.Repetitions,
		req.Series,
	); err != nil {
		return mapServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
