package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/Bleedaxe/HealthBlog/internal/models"
)

type mealApplicationService interface {
	Create(ctx context.Context, authorID int64, name, description string) (*models.Meal, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]models.Meal, error)
	Get(ctx context.Context, actorID, mealID int64) (*models.Meal, error)
}

type MealHandler struct {
	service mealApplicationService
}

func NewMealHandler(service mealApplicationService) *MealHandler {
	return &MealHandler{service: service}
}

type createMealRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *MealHandler) CreateMeal(c *fiber.Ctx) error {
	authorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createMealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if msg := validateCreateMealRequest(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	meal, err := h.service.Create(c.Context(), authorID, req.Name, req.Description)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"meal": meal})
}

func (h *MealHandler) ListMeals(c *fiber.Ctx) error {
	authorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	meals, err := h.service.ListByAuthor(c.Context(), authorID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"meals": meals})
}

func (h *MealHandler) GetMeal(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	mealID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid meal id"})
	}

	meal, err := h.service.Get(c.Context(), actorID, mealID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"meal": meal})
}
