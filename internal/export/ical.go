// internal/export/ical.go

// Package export renders itineraries into downloadable formats: iCalendar,
// PDF and CSV.
package export

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"gotravel/internal/models"
)

// timeOfDay maps the coarse activity slots onto calendar hours. Exact
// "HH:MM" values from the model win over the slot defaults.
var timeOfDay = map[string]int{
	"morning":   9,
	"afternoon": 14,
	"evening":   19,
}

// ICal renders the itinerary as an iCalendar document with one event per
// activity.
func ICal(it *models.Itinerary) (string, error) {
	if it == nil || it.DayCount() == 0 {
		return "", fmt.Errorf("itinerary has no days")
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//gotravel//itinerary//EN")
	cal.SetDescription(fmt.Sprintf("Trip to %s, %s to %s", it.Destination, it.StartDate, it.EndDate))

	for _, day := range it.Days {
		date, err := time.Parse(models.DateLayout, day.Date)
		if err != nil {
			return "", fmt.Errorf("day %d has invalid date %q", day.Day, day.Date)
		}
		for ai, activity := range day.Activities {
			start := activityStart(date, activity.Time)

			event := cal.AddEvent(fmt.Sprintf("day%d-activity%d@gotravel", day.Day, ai+1))
			event.SetCreatedTime(it.GeneratedAt)
			event.SetDtStampTime(it.GeneratedAt)
			event.SetStartAt(start)
			event.SetEndAt(start.Add(2 * time.Hour))
			event.SetSummary(eventSummary(day, activity))
			event.SetDescription(activity.Description)
			if activity.Address != "" {
				event.SetLocation(activity.Address)
			} else if activity.Location != "" {
				event.SetLocation(activity.Location)
			}
		}
	}

	return cal.Serialize(), nil
}

func activityStart(date time.Time, slot string) time.Time {
	if t, err := time.Parse("15:04", slot); err == nil {
		return date.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	}
	hour, ok := timeOfDay[slot]
	if !ok {
		hour = 9
	}
	return date.Add(time.Duration(hour) * time.Hour)
}

func eventSummary(day models.DayPlan, activity models.Activity) string {
	title := activity.Location
	if title == "" {
		title = activity.Description
		if len(title) > 60 {
			title = title[:57] + "..."
		}
	}
	return fmt.Sprintf("Day %d: %s", day.Day, title)
}
