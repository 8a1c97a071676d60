package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Bleedaxe/HealthBlog/internal/models"
	"github.com/Bleedaxe/HealthBlog/internal/services"
)

type stubProgramService struct {
	createResult *models.Program
	createErr    error
	listResult   []models.ProgramSummary
	listErr      error
	marketResult []models.ProgramOffer
	marketTotal  int
	marketErr    error
	buyResult    *models.UserProgram
	buyErr       error
	detailResult *models.ProgramDetail
	detailErr    error
	attachErr    error

	lastActorID     int64
	lastCreateInput services.CreateProgramInput
	lastSearch      string
	lastPage        int
	lastLimit       int
	lastProgramID   int64
	lastDayID       int64
	lastScheduledOn *time.Time
}

func (s *stubProgramService) Create(_ context.Context, authorID int64, input services.CreateProgramInput) (*models.Program, error) {
	s.lastActorID = authorID
	s.lastCreateInput = input
	return s.createResult, s.createErr
}

func (s *stubProgramService) ListForSale(_ context.Context, viewerID int64, search string, page, limit int) ([]models.ProgramOffer, int, error) {
	s.lastActorID = viewerID
	s.lastSearch = search
	s.lastPage = page
	s.lastLimit = limit
	return s.marketResult, s.marketTotal, s.marketErr
}

func (s *stubProgramService) Buy(_ context.Context, programID, buyerID int64) (*models.UserProgram, error) {
	s.lastProgramID = programID
	s.lastActorID = buyerID
	return s.buyResult, s.buyErr
}

func (s *stubProgramService) ListOwnedAndCreated(_ context.Context, userID int64) ([]models.ProgramSummary, error) {
	s.lastActorID = userID
	return s.listResult, s.listErr
}

func (s *stubProgramService) GetDetails(_ context.Context, viewerID, programID int64) (*models.ProgramDetail, error) {
	s.lastActorID = viewerID
	s.lastProgramID = programID
	return s.detailResult, s.detailErr
}

func (s *stubProgramService) AttachDay(_ context.Context, authorID, programID, dayID int64, scheduledOn *time.Time) error {
	s.lastActorID = authorID
	s.lastProgramID = programID
	s.lastDayID = dayID
	s.lastScheduledOn = scheduledOn
	return s.attachErr
}

func (s *stubProgramService) GetDefaultProgram(_ context.Context, userID int64) (*models.ProgramDetail, error) {
	s.lastActorID = userID
	return s.detailResult, s.detailErr
}

func newProgramTestApp(service *stubProgramService, userID string) *fiber.App {
	handler := &ProgramHandler{service: service}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})
	app.Get("/api/v1/programs", handler.ListMyPrograms)
	app.Post("/api/v1/programs", handler.CreateProgram)
	app.Get("/api/v1/programs/market", handler.ListMarket)
	app.Get("/api/v1/programs/default", handler.GetDefaultProgram)
	app.Get("/api/v1/programs/:id", handler.GetProgram)
	app.Post("/api/v1/programs/:id/buy", handler.BuyProgram)
	app.Post("/api/v1/programs/:id/days", handler.AttachDay)
	return app
}

func TestCreateProgramReturnsCreated(t *testing.T) {
	service := &stubProgramService{
		createResult: &models.Program{ID: 10, AuthorID: 42, Name: "Bulk"},
	}
	app := newProgramTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/programs", strings.NewReader(`{
		"name": "Bulk",
		"type": "Strength",
		"duration_days": 84,
		"price": 49.99,
		"is_for_sale": true
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastActorID != 42 {
		t.Fatalf("expected author 42, got %d", service.lastActorID)
	}
	if service.lastCreateInput.Name != "Bulk" || !service.lastCreateInput.IsForSale {
		t.Fatalf("unexpected create input: %+v", service.lastCreateInput)
	}
}

func TestCreateProgramRejectsShortName(t *testing.T) {
	service := &stubProgramService{}
	app := newProgramTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/programs", strings.NewReader(`{
		"name": "B",
		"type": "Strength",
		"duration_days": 84
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateProgramDuplicateNameConflicts(t *testing.T) {
	service := &stubProgramService{createErr: services.ErrConflict}
	app := newProgramTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/programs", strings.NewReader(`{
		"name": "Bulk",
		"type": "Strength",
		"duration_days": 84
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestListMarketPassesPagingAndSearch(t *testing.T) {
	service := &stubProgramService{
		marketResult: []models.ProgramOffer{
			{Program: models.Program{ID: 5, Name: "Shred"}, AuthorUsername: "bob"},
		},
		marketTotal: 11,
	}
	app := newProgramTestApp(service, "42")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/programs/market?search=shred&page=2&limit=5", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastSearch != "shred" || service.lastPage != 2 || service.lastLimit != 5 {
		t.Fatalf("unexpected market args: search %q page %d limit %d",
			service.lastSearch, service.lastPage, service.lastLimit)
	}

	var body struct {
		Pagination models.PaginationMeta `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Pagination.Total != 11 || body.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected pagination: %+v", body.Pagination)
	}
}

func TestListMarketCapsLimit(t *testing.T) {
	service := &stubProgramService{}
	app := newProgramTestApp(service, "42")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/programs/market?limit=500", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if service.lastLimit != maxPageLimit {
		t.Fatalf("expected limit capped at %d, got %d", maxPageLimit, service.lastLimit)
	}
}

func TestBuyProgramMapsServiceErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrProgramNotFound, http.StatusNotFound},
		{services.ErrForbidden, http.StatusForbidden},
		{services.ErrConflict, http.StatusConflict},
	}
	for _, tc := range cases {
		service := &stubProgramService{buyErr: tc.err}
		app := newProgramTestApp(service, "42")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/programs/5/buy", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != tc.status {
			t.Fatalf("expected %d for %v, got %d", tc.status, tc.err, resp.StatusCode)
		}
	}
}

func TestBuyProgramReturnsOwnership(t *testing.T) {
	service := &stubProgramService{
		buyResult: &models.UserProgram{UserID: 42, ProgramID: 5},
	}
	app := newProgramTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/programs/5/buy", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastProgramID != 5 || service.lastActorID != 42 {
		t.Fatalf("unexpected buy args: program %d buyer %d", service.lastProgramID, service.lastActorID)
	}
}

func TestGetDefaultProgramIsNotSwallowedByIDRoute(t *testing.T) {
	service := &stubProgramService{
		detailResult: &models.ProgramDetail{
			Program: models.Program{ID: 9, AuthorID: 42, Name: "Personal plan"},
			Author:  "You",
		},
	}
	app := newProgramTestApp(service, "42")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/programs/default", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastProgramID != 0 {
		t.Fatalf("expected default lookup, got program id %d", service.lastProgramID)
	}
}

func TestAttachDayReturnsNoContent(t *testing.T) {
	service := &stubProgramService{}
	app := newProgramTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/programs/5/days", strings.NewReader(`{
		"day_id": 21,
		"scheduled_on": "2026-03-15T00:00:00Z"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if service.lastProgramID != 5 || service.lastDayID != 21 {
		t.Fatalf("unexpected attach args: program %d day %d", service.lastProgramID, service.lastDayID)
	}
	if service.lastScheduledOn == nil {
		t.Fatalf("expected scheduled_on to pass through")
	}
}

func TestGetProgramRejectsBadID(t *testing.T) {
	service := &stubProgramService{}
	app := newProgramTestApp(service, "42")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/programs/abc", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
