// internal/export/csv.go
package export

import (
	"fmt"

	"github.com/jszwec/csvutil"

	"gotravel/internal/models"
)

type csvRow struct {
	Day           int     `csv:"day"`
	Date          string  `csv:"date"`
	Time          string  `csv:"time"`
	Description   string  `csv:"description"`
	Location      string  `csv:"location"`
	Address       string  `csv:"address"`
	EstimatedCost float64 `csv:"estimated_cost"`
	CostDisplay   string  `csv:"cost_display"`
}

// CSV renders the itinerary as a flat activity table, one row per activity.
func CSV(it *models.Itinerary) ([]byte, error) {
	if it == nil || it.DayCount() == 0 {
		return nil, fmt.Errorf("itinerary has no days")
	}

	rows := make([]csvRow, 0, it.ActivityCount())
	for _, day := range it.Days {
		for _, activity := range day.Activities {
			rows = append(rows, csvRow{
				Day:           day.Day,
				Date:          day.Date,
				Time:          activity.Time,
				Description:   activity.Description,
				Location:      activity.Location,
				Address:       activity.Address,
				EstimatedCost: activity.EstimatedCost,
				CostDisplay:   activity.CostDisplay,
			})
		}
	}

	out, err := csvutil.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("csv marshal: %w", err)
	}
	return out, nil
}
