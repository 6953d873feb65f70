package main

import (
	"log"
	"os"

	"Cadence/CronJobs"
	"Cadence/FiberConfig"
	"Cadence/Models"
)

func main() {
	Models.Connect()

	schedule := os.Getenv("SUMMARY_CRON")
	if schedule == "" {
		// 7:00 AM every day, organization time
		schedule = "0 0 7 * * *"
	}
	summaryMailer := CronJobs.NewSummaryMailer(schedule, false)
	if err := summaryMailer.Start(); err != nil {
		log.Printf("Failed to start summary mailer: %v", err)
	}
	defer summaryMailer.Stop()

	FiberConfig.FiberConfig()
}
