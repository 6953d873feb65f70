package CronJobs

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"Cadence/Models"
	"Cadence/Scheduler"
	"Cadence/Store"
	"Cadence/email"
)

// SummaryMailer computes each user's daily task summary and mails it out
// on a schedule.
type SummaryMailer struct {
	cronScheduler  *cron.Cron
	schedule       string
	runImmediately bool
	jobID          cron.EntryID
}

// NewSummaryMailer creates a new summary mailer with the given cron
// schedule (seconds-resolution, e.g. "0 0 7 * * *" for 7 AM daily).
func NewSummaryMailer(schedule string, runImmediately bool) *SummaryMailer {
	return &SummaryMailer{
		cronScheduler:  cron.New(cron.WithSeconds()),
		schedule:       schedule,
		runImmediately: runImmediately,
	}
}

// Start initiates the daily summary cron job
func (s *SummaryMailer) Start() error {
	var err error
	s.jobID, err = s.cronScheduler.AddFunc(s.schedule, func() {
		log.Println("Running scheduled daily summary run")
		s.runDailySummaries()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	s.cronScheduler.Start()
	log.Printf("Daily summary scheduler started with schedule %q", s.schedule)

	if s.runImmediately {
		log.Println("Running initial summary pass")
		s.runDailySummaries()
	}
	return nil
}

// Stop terminates the summary mailer
func (s *SummaryMailer) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		log.Println("Daily summary scheduler stopped")
	}
}

// UpdateSchedule changes the schedule of the summary mailer
func (s *SummaryMailer) UpdateSchedule(schedule string) error {
	s.cronScheduler.Remove(s.jobID)

	var err error
	s.jobID, err = s.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled daily summary run")
		s.runDailySummaries()
	})
	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	s.schedule = schedule
	log.Printf("Daily summary schedule updated to: %s\n", schedule)
	return nil
}

// RunManualSummary executes a summary pass outside the schedule.
func (s *SummaryMailer) RunManualSummary() {
	log.Println("Running manual summary pass")
	s.runDailySummaries()
}

// runDailySummaries builds and mails today's summary for every approved
// user. Each user is independent; one failure is logged and the pass
// moves on.
func (s *SummaryMailer) runDailySummaries() {
	today := time.Now().In(Models.OrgLocation)
	config := Models.LoadEmailConfig()

	var users []Models.User
	if err := Models.DB.Where("is_approved = ?", 1).Find(&users).Error; err != nil {
		log.Printf("Summary run aborted, failed to load users: %v", err)
		return
	}

	sent := 0
	for _, user := range users {
		if err := s.summarizeUser(user, today, config); err != nil {
			log.Printf("Summary for user %d (%s) failed: %v", user.ID, user.Name, err)
			continue
		}
		sent++
	}
	log.Printf("Daily summary run finished: %d/%d users", sent, len(users))
}

func (s *SummaryMailer) summarizeUser(user Models.User, today time.Time, config Models.EmailConfig) error {
	input, err := Store.LoadAgendaInput(Models.DB, user.ID)
	if err != nil {
		return err
	}

	summary := Scheduler.BuildDailySummary(input, user, today)
	if len(summary.Items) == 0 {
		return nil
	}
	if user.Email == "" || config.SMTPServer == "" {
		return nil
	}

	return email.SendEmail(config, Models.EmailMessage{
		To:      []string{user.Email},
		Subject: fmt.Sprintf("Your tasks for %s", summary.Date),
		Body:    formatSummaryBody(summary),
	})
}

func formatSummaryBody(summary Scheduler.DailySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", summary.UserName)
	fmt.Fprintf(&b, "Task summary for %s:\n", summary.Date)
	fmt.Fprintf(&b, "  Scheduled: %d\n", summary.Scheduled)
	fmt.Fprintf(&b, "  Completed: %d\n", summary.Completed)
	fmt.Fprintf(&b, "  Partial:   %d\n", summary.Partial)
	fmt.Fprintf(&b, "  Not done:  %d\n", summary.NotDone)
	fmt.Fprintf(&b, "  Pending:   %d\n", summary.Pending)
	fmt.Fprintf(&b, "  Carried forward: %d\n\n", summary.CarriedForward)
	for _, item := range summary.Items {
		fmt.Fprintf(&b, "- [%s] %s (due %s)", item.Status, item.TaskName, item.DueDate)
		if item.Notes != "" {
			fmt.Fprintf(&b, ": %s", item.Notes)
		}
		b.WriteString("\n")
	}
	return b.String()
}
