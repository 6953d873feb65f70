package Controllers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"Cadence/Models"
	"Cadence/Recurrence"
)

// TaskController administers task definitions and assignments.
type TaskController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{DB: db, validate: validator.New()}
}

type taskInput struct {
	Name             string         `json:"name" validate:"required"`
	Category         string         `json:"category"`
	Benchmark        *float64       `json:"benchmark"`
	RecurrenceType   string         `json:"recurrence_type" validate:"omitempty,oneof=none daily weekly monthly yearly custom"`
	RecurrenceConfig datatypes.JSON `json:"recurrence_config"`
}

// GetTasks retrieves all tasks, active by default; pass all=true to
// include deactivated ones.
func (c *TaskController) GetTasks(ctx *fiber.Ctx) error {
	query := c.DB.Model(&Models.Task{})
	if ctx.Query("all") != "true" {
		query = query.Where("active = ?", true)
	}

	var tasks []Models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tasks"})
	}
	return ctx.JSON(tasks)
}

func (c *TaskController) GetTask(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var task Models.Task
	if err := c.DB.First(&task, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}
	return ctx.JSON(task)
}

// CreateTask creates a task definition. The recurrence config is parsed up
// front so authoring mistakes surface here instead of silently producing a
// task that never applies.
func (c *TaskController) CreateTask(ctx *fiber.Ctx) error {
	user, _ := ctx.Locals("user").(Models.User)

	var input taskInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	recurrenceType := input.RecurrenceType
	if recurrenceType == "" {
		recurrenceType = Models.RecurrenceNone
	}
	if _, err := Recurrence.ParseConfig(recurrenceType, input.RecurrenceConfig); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	task := Models.Task{
		Name:             input.Name,
		Category:         input.Category,
		Benchmark:        input.Benchmark,
		RecurrenceType:   recurrenceType,
		RecurrenceConfig: input.RecurrenceConfig,
		CreatedByID:      user.ID,
		Active:           true,
	}
	if err := c.DB.Create(&task).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create task"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(task)
}

// UpdateTask applies administrative edits to a task definition.
func (c *TaskController) UpdateTask(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var task Models.Task
	if err := c.DB.First(&task, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	var input taskInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.RecurrenceType != "" {
		if _, err := Recurrence.ParseConfig(input.RecurrenceType, input.RecurrenceConfig); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		task.RecurrenceType = input.RecurrenceType
		task.RecurrenceConfig = input.RecurrenceConfig
	}
	task.Name = input.Name
	task.Category = input.Category
	task.Benchmark = input.Benchmark

	if err := c.DB.Save(&task).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update task"})
	}
	return ctx.JSON(task)
}

// DeactivateTask soft-deactivates a task. Definitions with recorded
// occurrences are never deleted.
func (c *TaskController) DeactivateTask(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var task Models.Task
	if err := c.DB.First(&task, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	task.Active = false
	if err := c.DB.Save(&task).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate task"})
	}
	return ctx.JSON(task)
}

type assignmentInput struct {
	AssigneeID uint `json:"assignee_id" validate:"required"`
	Delegated  bool `json:"delegated"`
}

// AssignTask handles POST /api/tasks/:id/assignments.
func (c *TaskController) AssignTask(ctx *fiber.Ctx) error {
	user, _ := ctx.Locals("user").(Models.User)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var task Models.Task
	if err := c.DB.First(&task, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	var input assignmentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var assignee Models.User
	if err := c.DB.First(&assignee, input.AssigneeID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assignee not found"})
	}

	assignment := Models.TaskAssignment{
		TaskID:       task.ID,
		AssigneeID:   input.AssigneeID,
		AssignedByID: user.ID,
		Delegated:    input.Delegated,
	}
	if err := c.DB.Create(&assignment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create assignment"})
	}
	assignment.Task = task
	return ctx.Status(fiber.StatusCreated).JSON(assignment)
}

// RevokeAssignment soft deletes an assignment; its completion history
// stays in place.
func (c *TaskController) RevokeAssignment(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("assignment_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assignment ID"})
	}

	var assignment Models.TaskAssignment
	if err := c.DB.First(&assignment, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assignment not found"})
	}

	c.DB.Delete(&assignment)
	return ctx.JSON(fiber.Map{"message": "Assignment revoked"})
}

// GetAssignments lists assignments, filterable by assignee.
func (c *TaskController) GetAssignments(ctx *fiber.Ctx) error {
	query := c.DB.Preload("Task")
	if id := queryInt(ctx, "assignee_id"); id > 0 {
		query = query.Where("assignee_id = ?", id)
	}

	var assignments []Models.TaskAssignment
	if err := query.Find(&assignments).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve assignments"})
	}
	return ctx.JSON(assignments)
}
