package models

import "time"

// Itinerary is the day-by-day travel plan produced from a generative-AI
// response. Held only for the current request/response cycle; the client
// carries it back for refinement and export.
type Itinerary struct {
	Destination   string    `json:"destination"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	LocalCurrency string    `json:"local_currency,omitempty"`
	Days          []DayPlan `json:"days"`
	DailyBudget   string    `json:"daily_budget,omitempty"`
	SafetyInfo    []string  `json:"safety_info,omitempty"`
	WellnessInfo  []string  `json:"wellness_info,omitempty"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// DayPlan is one day of the itinerary with its ordered activity blocks.
type DayPlan struct {
	Day        int        `json:"day"`
	Date       string     `json:"date,omitempty"`
	Title      string     `json:"title,omitempty"`
	Activities []Activity `json:"activities"`
}

// Activity is a single block within a day.
type Activity struct {
	Time          string  `json:"time"` // morning | afternoon | evening or HH:MM
	Description   string  `json:"description"`
	Location      string  `json:"location,omitempty"`
	Address       string  `json:"address,omitempty"`
	EstimatedCost float64 `json:"estimated_cost"` // in local currency
	CostDisplay   string  `json:"cost_display,omitempty"`
}

// DayCount returns the number of day entries.
func (i *Itinerary) DayCount() int {
	return len(i.Days)
}

// ActivityCount returns the total number of activity blocks.
func (i *Itinerary) ActivityCount() int {
	n := 0
	for _, d := range i.Days {
		n += len(d.Activities)
	}
	return n
}
