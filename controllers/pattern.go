package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fleetdesk/driver-portal/db"
	"github.com/fleetdesk/driver-portal/models"
	"github.com/fleetdesk/driver-portal/store"
	"github.com/fleetdesk/driver-portal/utils"
)

// GetWorkingPattern returns the driver's recurring weekly pattern. A
// driver who has not set one up gets an empty day list.
func GetWorkingPattern(c *fiber.Ctx) error {
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
	return c.JSON(renderPattern(pattern))
}

type updatePatternRequest struct {
	WorkingDays []string `json:"working_days"`
	StartTime   *string  `json:"start_time"`
	EndTime     *string  `json:"end_time"`
}

// UpdateWorkingPattern replaces the driver's pattern. This is the profile
// update path; the calendar itself never writes the pattern.
func UpdateWorkingPattern(c *fiber.Ctx) error {
	driverID, err := driverIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid driver id",
		})
	}
	req := new(updatePatternRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	for _, day := range req.WorkingDays {
		if !utils.IsWeekdayName(day) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown weekday: " + day,
			})
		}
	}
	// Hours come as a pair or not at all.
	if (req.StartTime == nil) != (req.EndTime == nil) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "start_time and end_time must be set together",
		})
	}
	if req.StartTime != nil {
		start, err := utils.ParseClock(*req.StartTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		end, err := utils.ParseClock(*req.EndTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if !start.Before(end) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "end_time must be after start_time",
			})
		}
	}

	pattern := &models.WorkingPattern{DriverID: driverID, StartTime: req.StartTime, EndTime: req.EndTime}
	pattern.SetWorkingDays(req.WorkingDays)
	if err := store.NewDriverProfileRepo(db.DB).SavePattern(c.Context(), pattern); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update working pattern",
		})
	}
	return c.JSON(renderPattern(pattern))
}

func renderPattern(p *models.WorkingPattern) fiber.Map {
	days := p.WorkingDays()
	if days == nil {
		days = []string{}
	}
	out := fiber.Map{
		"driver_id":    p.DriverID,
		"working_days": days,
	}
	if p.HasHours() {
		out["start_time"] = *p.StartTime
		out["end_time"] = *p.EndTime
	}
	return out
}
