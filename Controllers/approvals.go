package Controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Cadence/Models"
	"Cadence/Scheduler"
)

// ApprovalController handles manager sign-off on submitted completions.
// Routes behind it require manager permission.
type ApprovalController struct {
	DB *gorm.DB
}

func NewApprovalController(db *gorm.DB) *ApprovalController {
	return &ApprovalController{DB: db}
}

type approvalInput struct {
	Comment string `json:"comment"`
}

func (c *ApprovalController) loadRecord(ctx *fiber.Ctx) (*Models.CompletionRecord, error) {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return nil, ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid completion ID"})
	}
	var record Models.CompletionRecord
	if err := c.DB.First(&record, id).Error; err != nil {
		return nil, ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Completion not found"})
	}
	return &record, nil
}

func (c *ApprovalController) applyDecision(ctx *fiber.Ctx, decide func(*Models.CompletionRecord, uint, string) error) error {
	user, _ := ctx.Locals("user").(Models.User)

	record, err := c.loadRecord(ctx)
	if record == nil {
		return err
	}

	var input approvalInput
	if err := ctx.BodyParser(&input); err != nil && len(ctx.Body()) > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err = decide(record, user.ID, input.Comment)
	var validationErr *Scheduler.ValidationError
	if errors.As(err, &validationErr) {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(validationErr)
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to apply decision"})
	}

	if err := c.DB.Save(record).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save decision"})
	}
	return ctx.JSON(record)
}

// Approve handles PUT /api/completions/:id/approve. Comment optional.
func (c *ApprovalController) Approve(ctx *fiber.Ctx) error {
	return c.applyDecision(ctx, Scheduler.Approve)
}

// Reject handles PUT /api/completions/:id/reject. Comment mandatory; the
// completion status itself is left untouched.
func (c *ApprovalController) Reject(ctx *fiber.Ctx) error {
	return c.applyDecision(ctx, Scheduler.Reject)
}
