package Controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Cadence/Calendar"
	"Cadence/Models"
	"Cadence/Scheduler"
	"Cadence/Store"
)

// AgendaController serves the daily and range agendas built by the
// scheduling engine.
type AgendaController struct {
	DB *gorm.DB
}

func NewAgendaController(db *gorm.DB) *AgendaController {
	return &AgendaController{DB: db}
}

// queryInt parses an integer query parameter, 0 when absent or malformed.
func queryInt(ctx *fiber.Ctx, name string) int {
	value, err := strconv.Atoi(ctx.Query(name))
	if err != nil {
		return 0
	}
	return value
}

// targetUser resolves which person an agenda-style request is about.
// Members may only look at themselves; managers may pass user_id.
func targetUser(ctx *fiber.Ctx) (uint, bool) {
	user, ok := ctx.Locals("user").(Models.User)
	if !ok {
		return 0, false
	}
	requested := queryInt(ctx, "user_id")
	if requested > 0 && uint(requested) != user.ID {
		if user.Permission < Models.PermissionManager {
			return 0, false
		}
		return uint(requested), true
	}
	return user.ID, true
}

func parseDateParam(ctx *fiber.Ctx, name string, fallback time.Time) (time.Time, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return time.ParseInLocation(Calendar.DateLayout, raw, Models.OrgLocation)
}

// GetDailyAgenda handles GET /api/agenda/daily?date=YYYY-MM-DD[&user_id=].
func (c *AgendaController) GetDailyAgenda(ctx *fiber.Ctx) error {
	userID, ok := targetUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Cannot view another user's agenda"})
	}

	date, err := parseDateParam(ctx, "date", time.Now().In(Models.OrgLocation))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	input, err := Store.LoadAgendaInput(c.DB, userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load agenda data"})
	}

	return ctx.JSON(Scheduler.BuildDailyAgenda(input, date))
}

// GetMonthlyAgenda handles GET /api/agenda/monthly?from=&to=[&user_id=].
func (c *AgendaController) GetMonthlyAgenda(ctx *fiber.Ctx) error {
	userID, ok := targetUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Cannot view another user's agenda"})
	}

	now := time.Now().In(Models.OrgLocation)
	from, err := parseDateParam(ctx, "from", time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, Models.OrgLocation))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid from date, expected YYYY-MM-DD"})
	}
	to, err := parseDateParam(ctx, "to", from.AddDate(0, 1, -1))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid to date, expected YYYY-MM-DD"})
	}
	if to.Before(from) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "to precedes from"})
	}
	if to.Sub(from) > 366*24*time.Hour {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Range too large"})
	}

	input, err := Store.LoadAgendaInput(c.DB, userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load agenda data"})
	}

	return ctx.JSON(Scheduler.BuildMonthlyAgenda(input, from, to))
}

// GetDailySummary handles GET /api/agenda/summary?date=[&user_id=] and
// returns the same object the notification job mails out.
func (c *AgendaController) GetDailySummary(ctx *fiber.Ctx) error {
	userID, ok := targetUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Cannot view another user's summary"})
	}

	date, err := parseDateParam(ctx, "date", time.Now().In(Models.OrgLocation))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	var user Models.User
	if err := c.DB.First(&user, userID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	input, err := Store.LoadAgendaInput(c.DB, userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load agenda data"})
	}

	return ctx.JSON(Scheduler.BuildDailySummary(input, user, date))
}
