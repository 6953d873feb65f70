package FiberConfig

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"Cadence/Controllers"
	"Cadence/Models"
	"Cadence/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	authController := Controllers.NewAuthController(db)
	taskController := Controllers.NewTaskController(db)
	agendaController := Controllers.NewAgendaController(db)
	completionController := Controllers.NewCompletionController(db)
	approvalController := Controllers.NewApprovalController(db)
	calendarController := Controllers.NewCalendarController(db)
	statsController := Controllers.NewStatsController(db)

	api := app.Group("/api")

	// Auth routes
	api.Post("/register", authController.Register)
	api.Post("/login", authController.Login)
	api.Post("/logout", authController.Logout)
	api.Get("/user", middleware.Verify(Models.PermissionMember), authController.CurrentUser)
	api.Put("/users/:id/approve", middleware.Verify(Models.PermissionAdmin), authController.ApproveUser)

	// Task definition and assignment routes
	tasks := api.Group("/tasks", middleware.Verify(Models.PermissionMember))
	tasks.Get("/", taskController.GetTasks)
	tasks.Get("/:id", taskController.GetTask)
	tasks.Post("/", middleware.Verify(Models.PermissionManager), taskController.CreateTask)
	tasks.Put("/:id", middleware.Verify(Models.PermissionManager), taskController.UpdateTask)
	tasks.Delete("/:id", middleware.Verify(Models.PermissionManager), taskController.DeactivateTask)
	tasks.Post("/:id/assignments", middleware.Verify(Models.PermissionManager), taskController.AssignTask)

	assignments := api.Group("/assignments", middleware.Verify(Models.PermissionMember))
	assignments.Get("/", taskController.GetAssignments)
	assignments.Delete("/:assignment_id", middleware.Verify(Models.PermissionManager), taskController.RevokeAssignment)

	// Agenda routes
	agenda := api.Group("/agenda", middleware.Verify(Models.PermissionMember))
	agenda.Get("/daily", agendaController.GetDailyAgenda)
	agenda.Get("/monthly", agendaController.GetMonthlyAgenda)
	agenda.Get("/summary", agendaController.GetDailySummary)

	// Completion routes
	completions := api.Group("/completions", middleware.Verify(Models.PermissionMember))
	completions.Get("/", completionController.GetCompletions)
	completions.Post("/", completionController.SubmitCompletion)
	completions.Put("/:id/approve", middleware.Verify(Models.PermissionManager), approvalController.Approve)
	completions.Put("/:id/reject", middleware.Verify(Models.PermissionManager), approvalController.Reject)

	// Calendar routes
	calendar := api.Group("/calendar", middleware.Verify(Models.PermissionMember))
	calendar.Get("/working-day", calendarController.GetWorkingDay)
	calendar.Get("/holidays", calendarController.GetPublicHolidays)
	calendar.Post("/holidays", middleware.Verify(Models.PermissionAdmin), calendarController.CreatePublicHoliday)
	calendar.Delete("/holidays/:id", middleware.Verify(Models.PermissionAdmin), calendarController.DeletePublicHoliday)
	calendar.Get("/weekly-offs", calendarController.GetOrgWeeklyOffs)
	calendar.Put("/weekly-offs", middleware.Verify(Models.PermissionAdmin), calendarController.SetOrgWeeklyOffs)
	calendar.Put("/weekly-offs/:user_id", middleware.Verify(Models.PermissionAdmin), calendarController.SetPersonWeeklyOffs)
	calendar.Get("/leaves", calendarController.GetPersonalHolidays)
	calendar.Post("/leaves", calendarController.RequestPersonalHoliday)
	calendar.Put("/leaves/:id", middleware.Verify(Models.PermissionManager), calendarController.DecidePersonalHoliday)

	// Stats routes
	stats := api.Group("/stats", middleware.Verify(Models.PermissionMember))
	stats.Get("/monthly", statsController.GetMonthlyCompletion)
	stats.Get("/team", middleware.Verify(Models.PermissionManager), statsController.GetTeamMonthlyCompletion)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupRoutes(app, Models.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Fatal(app.Listen(":" + port))
}
