package Controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Cadence/Calendar"
	"Cadence/Models"
	"Cadence/Scheduler"
)

// CompletionController records outcomes against agenda occurrences.
type CompletionController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewCompletionController(db *gorm.DB) *CompletionController {
	return &CompletionController{DB: db, validate: validator.New()}
}

type submitCompletionInput struct {
	AssignmentID      uint     `json:"assignment_id" validate:"required"`
	ScheduledDate     string   `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	Status            string   `json:"status"`
	QuantityCompleted *float64 `json:"quantity_completed"`
	Notes             string   `json:"notes"`
}

// SubmitCompletion handles POST /api/completions. Writes are an upsert on
// (assignment_id, scheduled_date): resubmitting overwrites the previous
// outcome for that occurrence. The stored record is returned so the caller
// can update its state without refetching.
func (c *CompletionController) SubmitCompletion(ctx *fiber.Ctx) error {
	user, _ := ctx.Locals("user").(Models.User)

	var input submitCompletionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var assignment Models.TaskAssignment
	if err := c.DB.Preload("Task").First(&assignment, input.AssignmentID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assignment not found"})
	}
	if assignment.AssigneeID != user.ID && user.Permission < Models.PermissionManager {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not your assignment"})
	}

	status, err := Scheduler.Resolve(assignment.Task, Scheduler.Submission{
		Status:   input.Status,
		Quantity: input.QuantityCompleted,
		Notes:    input.Notes,
	})
	var validationErr *Scheduler.ValidationError
	if errors.As(err, &validationErr) {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(validationErr)
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve status"})
	}

	record := Models.CompletionRecord{
		AssignmentID:      assignment.ID,
		ScheduledDate:     input.ScheduledDate,
		CompletionDate:    time.Now().In(Models.OrgLocation).Format(Calendar.DateLayout),
		Status:            status,
		QuantityCompleted: input.QuantityCompleted,
		Notes:             input.Notes,
	}
	if Scheduler.Approvable(status) {
		pending := Models.ApprovalPending
		record.ApprovalStatus = &pending
	}

	if err := c.upsertRecord(&record); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save completion"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(record)
}

// upsertRecord writes last-write-wins on the (assignment_id,
// scheduled_date) key. If the store still reports the uniqueness
// constraint, the write is retried once as a plain update.
func (c *CompletionController) upsertRecord(record *Models.CompletionRecord) error {
	// The unique index is partial (soft deletes are excluded), so the
	// conflict target has to carry the same predicate or SQLite refuses
	// to match it.
	err := c.DB.Clauses(clause.OnConflict{
		Columns:     []clause.Column{{Name: "assignment_id"}, {Name: "scheduled_date"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "deleted_at IS NULL"}}},
		DoUpdates: clause.AssignmentColumns([]string{
			"completion_date", "status", "quantity_completed", "notes",
			"approval_status", "approver_comment", "approved_by_id", "updated_at",
		}),
	}).Create(record).Error

	if err == nil {
		return nil
	}
	if !strings.Contains(strings.ToLower(err.Error()), "unique") {
		return err
	}

	var existing Models.CompletionRecord
	if err := c.DB.Where("assignment_id = ? AND scheduled_date = ?",
		record.AssignmentID, record.ScheduledDate).First(&existing).Error; err != nil {
		return err
	}
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	return c.DB.Save(record).Error
}

// GetCompletions handles GET /api/completions?assignment_id=&from=&to=.
func (c *CompletionController) GetCompletions(ctx *fiber.Ctx) error {
	user, _ := ctx.Locals("user").(Models.User)

	query := c.DB.Model(&Models.CompletionRecord{}).
		Joins("JOIN task_assignments ON task_assignments.id = completion_records.assignment_id")
	if user.Permission < Models.PermissionManager {
		query = query.Where("task_assignments.assignee_id = ?", user.ID)
	}
	if id := queryInt(ctx, "assignment_id"); id > 0 {
		query = query.Where("completion_records.assignment_id = ?", id)
	}
	if from := ctx.Query("from"); from != "" {
		query = query.Where("completion_records.scheduled_date >= ?", from)
	}
	if to := ctx.Query("to"); to != "" {
		query = query.Where("completion_records.scheduled_date <= ?", to)
	}

	var records []Models.CompletionRecord
	if err := query.Find(&records).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve completions"})
	}
	return ctx.JSON(records)
}
