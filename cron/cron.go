package cron

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fleetdesk/driver-portal/calendar"
	"github.com/fleetdesk/driver-portal/db"
	"github.com/fleetdesk/driver-portal/models"
	"github.com/fleetdesk/driver-portal/utils"
)

// StartCronJobs initializes and starts the cron scheduler for the weekly
// time-off digest
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Every Monday morning, mail each driver their time off for the week
	_, err := c.AddFunc("0 7 * * 1", sendTimeOffDigests)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for weekly time-off digests")
}

// sendTimeOffDigests collects this week's block-outs per driver and mails a summary
func sendTimeOffDigests() {
	week := calendar.NewWeek(calendar.MondayOf(time.Now()))

	var blocks []models.AvailabilityBlock
	err := db.DB.Preload("Driver").
		Where("available = ? AND date BETWEEN ? AND ?", false, week.Start, week.End).
		Order("driver_id, date, start_time").
		Find(&blocks).Error
	if err != nil {
		log.Printf("Error fetching blocks for digest: %v", err)
		return
	}

	byDriver := make(map[uint][]models.AvailabilityBlock)
	for _, block := range blocks {
		byDriver[block.DriverID] = append(byDriver[block.DriverID], block)
	}
	fmt.Printf("Found %d drivers with time off this week\n", len(byDriver))

	for driverID, driverBlocks := range byDriver {
		driver := driverBlocks[0].Driver
		if driver.Email == "" {
			continue
		}
		if err := sendDigestEmail(&driver, week, driverBlocks); err != nil {
			log.Printf("Failed to send digest to driver %d: %v", driverID, err)
			continue
		}
		log.Printf("Sent time-off digest for driver %d to %s", driverID, driver.Email)
	}
}

// sendDigestEmail constructs and sends the digest email
func sendDigestEmail(driver *models.Driver, week calendar.WeekWindow, blocks []models.AvailabilityBlock) error {
	subject := fmt.Sprintf("Your time off for the week of %s", week.Start.Format("02 Jan 2006"))

	var rows strings.Builder
	for _, block := range blocks {
		note := block.Note
		if note == "" {
			note = "-"
		}
		rows.WriteString(fmt.Sprintf("<li><strong>%s</strong>: %s–%s (%s)</li>",
			block.Date.Format("Monday 02 Jan"), block.StartTime, block.EndTime, note))
	}

	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Here is the time off on your calendar for %s – %s:</p>
		<ul>%s</ul>
		<p>If anything looks wrong, update your availability in the driver portal.</p>
		<p>Best regards,</p>
		<p>Your Dispatch Team</p>
	`, driver.Name,
		week.Start.Format("02 Jan"), week.End.Format("02 Jan 2006"),
		rows.String())

	return utils.SendEmail(driver.Email, subject, body)
}
