package Controllers

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Cadence/Calendar"
	"Cadence/Models"
	"Cadence/Store"
)

// CalendarController administers the working-day sources: public holidays,
// weekly offs, person overrides, and personal leave.
type CalendarController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewCalendarController(db *gorm.DB) *CalendarController {
	return &CalendarController{DB: db, validate: validator.New()}
}

// GetWorkingDay handles GET /api/calendar/working-day?date=[&user_id=].
func (c *CalendarController) GetWorkingDay(ctx *fiber.Ctx) error {
	userID, ok := targetUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Cannot view another user's calendar"})
	}

	date, err := parseDateParam(ctx, "date", time.Now().In(Models.OrgLocation))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	data, err := Store.LoadDayData(c.DB, userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load calendar data"})
	}
	return ctx.JSON(Calendar.IsWorkingDay(data, date))
}

type publicHolidayInput struct {
	Name string `json:"name" validate:"required"`
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

func (c *CalendarController) GetPublicHolidays(ctx *fiber.Ctx) error {
	var holidays []Models.PublicHoliday
	if err := c.DB.Order("date").Find(&holidays).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve holidays"})
	}
	return ctx.JSON(holidays)
}

func (c *CalendarController) CreatePublicHoliday(ctx *fiber.Ctx) error {
	var input publicHolidayInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	holiday := Models.PublicHoliday{Name: input.Name, Date: input.Date}
	if err := c.DB.Create(&holiday).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create holiday"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(holiday)
}

func (c *CalendarController) DeletePublicHoliday(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid holiday ID"})
	}

	var holiday Models.PublicHoliday
	if err := c.DB.First(&holiday, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Holiday not found"})
	}
	c.DB.Delete(&holiday)
	return ctx.JSON(fiber.Map{"message": "Holiday deleted"})
}

type weeklyOffInput struct {
	Weekdays []int `json:"weekdays" validate:"required,dive,gte=0,lte=6"`
}

// SetOrgWeeklyOffs replaces the organization weekly-off set.
func (c *CalendarController) SetOrgWeeklyOffs(ctx *fiber.Ctx) error {
	var input weeklyOffInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err := c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Models.OrgWeeklyOff{}).Error; err != nil {
			return err
		}
		for _, weekday := range input.Weekdays {
			if err := tx.Create(&Models.OrgWeeklyOff{Weekday: weekday}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save weekly offs"})
	}

	var offs []Models.OrgWeeklyOff
	c.DB.Find(&offs)
	return ctx.JSON(offs)
}

func (c *CalendarController) GetOrgWeeklyOffs(ctx *fiber.Ctx) error {
	var offs []Models.OrgWeeklyOff
	if err := c.DB.Find(&offs).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve weekly offs"})
	}
	return ctx.JSON(offs)
}

// SetPersonWeeklyOffs replaces one person's weekly-off override. An empty
// weekday list removes the override and the org default applies again.
func (c *CalendarController) SetPersonWeeklyOffs(ctx *fiber.Ctx) error {
	userID, err := strconv.Atoi(ctx.Params("user_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var input weeklyOffInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	for _, weekday := range input.Weekdays {
		if weekday < 0 || weekday > 6 {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Weekday out of range"})
		}
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&Models.PersonWeeklyOff{}).Error; err != nil {
			return err
		}
		for _, weekday := range input.Weekdays {
			if err := tx.Create(&Models.PersonWeeklyOff{UserID: uint(userID), Weekday: weekday}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save weekly offs"})
	}

	var offs []Models.PersonWeeklyOff
	c.DB.Where("user_id = ?", userID).Find(&offs)
	return ctx.JSON(offs)
}

type personalHolidayInput struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason"`
}

// RequestPersonalHoliday files a leave request. It only affects scheduling
// once a manager approves it.
func (c *CalendarController) RequestPersonalHoliday(ctx *fiber.Ctx) error {
	user, _ := ctx.Locals("user").(Models.User)

	var input personalHolidayInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.EndDate < input.StartDate {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "End date precedes start date"})
	}

	leave := Models.PersonalHoliday{
		UserID:    user.ID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Reason:    input.Reason,
		Status:    Models.LeavePending,
	}
	if err := c.DB.Create(&leave).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create leave request"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(leave)
}

// DecidePersonalHoliday handles PUT /api/calendar/leaves/:id with
// {"status": "approved"|"rejected"}.
func (c *CalendarController) DecidePersonalHoliday(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid leave ID"})
	}

	var leave Models.PersonalHoliday
	if err := c.DB.First(&leave, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Leave request not found"})
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Status != Models.LeaveApproved && input.Status != Models.LeaveRejected {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status must be approved or rejected"})
	}

	leave.Status = input.Status
	if err := c.DB.Save(&leave).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save decision"})
	}
	return ctx.JSON(leave)
}

// GetPersonalHolidays lists leave requests; members see their own,
// managers can filter by user.
func (c *CalendarController) GetPersonalHolidays(ctx *fiber.Ctx) error {
	user, _ := ctx.Locals("user").(Models.User)

	query := c.DB.Order("start_date")
	if user.Permission >= Models.PermissionManager {
		if id := queryInt(ctx, "user_id"); id > 0 {
			query = query.Where("user_id = ?", id)
		}
	} else {
		query = query.Where("user_id = ?", user.ID)
	}

	var leaves []Models.PersonalHoliday
	if err := query.Find(&leaves).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve leave requests"})
	}
	return ctx.JSON(leaves)
}
