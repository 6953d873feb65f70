package Controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Cadence/Models"
	"Cadence/Scheduler"
	"Cadence/Store"
)

// StatsController serves completion-percentage rollups.
type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// GetMonthlyCompletion handles GET /api/stats/monthly?month=YYYY-MM[&user_id=].
func (c *StatsController) GetMonthlyCompletion(ctx *fiber.Ctx) error {
	userID, ok := targetUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Cannot view another user's stats"})
	}

	now := time.Now().In(Models.OrgLocation)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, Models.OrgLocation)
	if raw := ctx.Query("month"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01", raw, Models.OrgLocation)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid month, expected YYYY-MM"})
		}
		monthStart = parsed
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	input, err := Store.LoadStatsInput(c.DB, userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load stats data"})
	}

	stats := Scheduler.MonthlyCompletion(input, monthStart, monthEnd)
	return ctx.JSON(fiber.Map{
		"user_id":    userID,
		"month":      monthStart.Format("2006-01"),
		"total":      stats.Total,
		"completed":  stats.Completed,
		"percentage": stats.Percentage,
	})
}

// GetTeamMonthlyCompletion handles GET /api/stats/team?month=YYYY-MM for
// managers: the same rollup computed per direct report, failures isolated
// per user.
func (c *StatsController) GetTeamMonthlyCompletion(ctx *fiber.Ctx) error {
	now := time.Now().In(Models.OrgLocation)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, Models.OrgLocation)
	if raw := ctx.Query("month"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01", raw, Models.OrgLocation)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid month, expected YYYY-MM"})
		}
		monthStart = parsed
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	var users []Models.User
	if err := c.DB.Where("is_approved = ?", 1).Find(&users).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load users"})
	}

	results := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		input, err := Store.LoadStatsInput(c.DB, user.ID)
		if err != nil {
			// One person's bad data must not sink the whole team view.
			continue
		}
		stats := Scheduler.MonthlyCompletion(input, monthStart, monthEnd)
		results = append(results, fiber.Map{
			"user_id":    user.ID,
			"user_name":  user.Name,
			"total":      stats.Total,
			"completed":  stats.Completed,
			"percentage": stats.Percentage,
		})
	}

	return ctx.JSON(fiber.Map{
		"month": monthStart.Format("2006-01"),
		"team":  results,
	})
}
