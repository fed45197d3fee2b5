package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fleetdesk/driver-portal/calendar"
	"github.com/fleetdesk/driver-portal/db"
	"github.com/fleetdesk/driver-portal/models"
	"github.com/fleetdesk/driver-portal/redis"
	"github.com/fleetdesk/driver-portal/store"
	"github.com/fleetdesk/driver-portal/utils"
)

// weekCacheTTL keeps cached range results short-lived; creation bumps the
// driver's cache version anyway, so this only bounds staleness from writes
// that bypass this service.
const weekCacheTTL = 5 * time.Minute

func availabilityStore() calendar.AvailabilityStore {
	repo := store.NewAvailabilityRepo(db.DB)
	if redis.Client != nil {
		return store.NewCachedAvailability(repo, redis.Client, weekCacheTTL)
	}
	return repo
}

func driverIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// GetWeekView renders one week of the driver's availability calendar.
// ?start=YYYY-MM-DD selects the week containing that date; without it the
// current week is shown.
func GetWeekView(c *fiber.Ctx) error {
	driverID, err := driverIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid driver id",
		})
	}

	pattern, err := store.NewDriverProfileRepo(db.DB).WorkingPattern(c.Context(), driverID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load working pattern",
		})
	}

	session := calendar.NewSession(driverID, pattern, availabilityStore())
	if start := c.Query("start"); start != "" {
		date, err := utils.ParseDate(start)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		session.SetWeek(date)
	}

	if err := session.LoadWeek(c.Context()); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(utils.ErrorResponse{
			Message: "Unable to load availability for this week",
			Error:   err.Error(),
		})
	}

	window := session.CurrentWeek()
	days := session.Week()
	defaults := calendar.DefaultEditorConfig()

	return c.JSON(fiber.Map{
		"week": fiber.Map{
			"start": window.Start.Format(utils.DateLayout),
			"end":   window.End.Format(utils.DateLayout),
		},
		"days": renderDays(days),
		"defaults": fiber.Map{
			"start_time": defaults.DefaultStart,
			"end_time":   defaults.DefaultEnd,
		},
	})
}

func renderDays(days []calendar.DayAvailability) []fiber.Map {
	out := make([]fiber.Map, 0, len(days))
	for _, day := range days {
		entry := fiber.Map{
			"date":           day.Date.Format(utils.DateLayout),
			"weekday":        day.Weekday,
			"is_working_day": day.IsWorkingDay,
			"is_today":       day.IsToday,
			"status":         day.Status,
			"blocks":         renderBlocks(day.Blocks),
		}
		if day.StartTime != nil && day.EndTime != nil {
			entry["start_time"] = *day.StartTime
			entry["end_time"] = *day.EndTime
		}
		out = append(out, entry)
	}
	return out
}

func renderBlocks(blocks []models.AvailabilityBlock) []fiber.Map {
	out := make([]fiber.Map, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, renderBlock(b))
	}
	return out
}

func renderBlock(b models.AvailabilityBlock) fiber.Map {
	return fiber.Map{
		"id":         b.ID,
		"date":       b.Date.Format(utils.DateLayout),
		"start_time": b.StartTime,
		"end_time":   b.EndTime,
		"available":  b.Available,
		"note":       b.Note,
	}
}

type createBlockRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Note      string `json:"note"`
}

// CreateBlock submits a new time-off block through the editor. Validation
// failures come back as 400 with the editor's message; store failures as
// 502.
func CreateBlock(c *fiber.Ctx) error {
	driverID, err := driverIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid driver id",
		})
	}

	req := new(createBlockRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	var date time.Time
	if req.Date != "" {
		date, err = utils.ParseDate(req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	editor := calendar.NewBlockEditor(availabilityStore(), calendar.DefaultEditorConfig())
	block, err := editor.CreateBlock(c.Context(), driverID, date, req.StartTime, req.EndTime, req.Note)
	if err != nil {
		if calendar.IsValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(utils.ErrorResponse{
			Message: "Failed to save availability block",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(renderBlock(*block))
}

// ListBlocks is the raw range query the dispatch side reads:
// ?from=YYYY-MM-DD&to=YYYY-MM-DD, both inclusive.
func ListBlocks(c *fiber.Ctx) error {
	driverID, err := driverIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid driver id",
		})
	}
	from, err := utils.ParseDate(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	to, err := utils.ParseDate(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	blocks, err := availabilityStore().QueryRange(c.Context(), driverID, from, to)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(utils.ErrorResponse{
			Message: "Failed to query availability blocks",
			Error:   err.Error(),
		})
	}
	return c.JSON(renderBlocks(blocks))
}

// CheckAvailability answers whether the driver can take a job in the given
// window: ?date=YYYY-MM-DD&start=HH:MM&end=HH:MM.
func CheckAvailability(c *fiber.Ctx) error {
	driverID, err := driverIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid driver id",
		})
	}
	date, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	pattern, err := store.NewDriverProfileRepo(db.DB).WorkingPattern(c.Context(), driverID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load working pattern",
		})
	}
	blocks, err := availabilityStore().QueryRange(c.Context(), driverID, date, date)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(utils.ErrorResponse{
			Message: "Failed to query availability blocks",
			Error:   err.Error(),
		})
	}

	available, reason, err := calendar.CheckWindow(pattern, blocks, date, c.Query("start"), c.Query("end"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	resp := fiber.Map{"available": available}
	if reason != "" {
		resp["reason"] = reason
	}
	return c.JSON(resp)
}
