package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Bleedaxe/HealthBlog/internal/config"
	"github.com/Bleedaxe/HealthBlog/internal/handlers"
	"github.com/Bleedaxe/HealthBlog/internal/middleware"
	"github.com/Bleedaxe/HealthBlog/internal/repository"
	"github.com/Bleedaxe/HealthBlog/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	programRepo := repository.NewProgramRepository(db)
	dayRepo := repository.NewDayRepository(db)
	mealRepo := repository.NewMealRepository(db)
	trainingRepo := repository.NewTrainingRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)

	authHandler := handlers.NewAuthHandler(db, userRepo, cfg.JWTSecret)
	programService := services.NewProgramService(programRepo, dayRepo, userRepo)
	programHandler := handlers.NewProgramHandler(programService)
	dayService := services.NewDayService(dayRepo, mealRepo, trainingRepo, userRepo)
	dayHandler := handlers.NewDayHandler(dayService)
	mealService := services.NewMealService(mealRepo, userRepo)
	mealHandler := handlers.NewMealHandler(mealService)
	trainingService := services.NewTrainingService(trainingRepo, exerciseRepo, userRepo)
	trainingHandler := handlers.NewTrainingHandler(trainingService)
	exerciseService := services.NewExerciseService(exerciseRepo, userRepo)
	exerciseHandler := handlers.NewExerciseHandler(exerciseService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	programs := authProtected.Group("/programs")
	programs.Get("", programHandler.ListMyPrograms)
	programs.Post("", programHandler.CreateProgram)
	programs.Get("/market", programHandler.ListMarket)
	// Registered before "/:id" so the literal segment is not swallowed by the param route.
	programs.Get("/default", programHandler.GetDefaultProgram)
	programs.Get("/:id", programHandler.GetProgram)
	programs.Post("/:id/buy", programHandler.BuyProgram)
	programs.Post("/:id/days", programHandler.AttachDay)

	days := authProtected.Group("/days")
	days.Get("", dayHandler.ListDays)
	days.Post("", dayHandler.CreateDay)
	days.Get("/:id", dayHandler.GetDay)
	days.Post("/:id/meals", dayHandler.AttachMeal)
	days.Post("/:id/trainings", dayHandler.AttachTraining)
	days.Put("/:id/meals/:mealId/completed", dayHandler.SetMealCompleted)

	meals := authProtected.Group("/meals")
	meals.Get("", mealHandler.ListMeals)
	meals.Post("", mealHandler.CreateMeal)
	meals.Get("/:id", mealHandler.GetMeal)

	trainings := authProtected.Group("/trainings")
	trainings.Get("", trainingHandler.ListTrainings)
	trainings.Post("", trainingHandler.CreateTraining)
	trainings.Get("/:id", trainingHandler.GetTraining)
	trainings.Post("/:id/exercises", trainingHandler.AttachExercise)

	exercises := authProtected.Group("/exercises")
	exercises.Get("", exerciseHandler.ListExercises)
	exercises.Post("", exerciseHandler.CreateExercise)
	exercises.Get("/:id", exerciseHandler.GetExercise)
}
