package models

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// BudgetTier is the traveler's spending bracket.
type BudgetTier string

const (
	BudgetEconomy  BudgetTier = "economy"
	BudgetMidRange BudgetTier = "mid-range"
	BudgetLuxury   BudgetTier = "luxury"
)

func (b BudgetTier) Valid() bool {
	switch b {
	case BudgetEconomy, BudgetMidRange, BudgetLuxury, "":
		return true
	}
	return false
}

// LodgingPreference is where the traveler wants to stay.
type LodgingPreference string

const (
	LodgingHotel         LodgingPreference = "hotel"
	LodgingVacationHome  LodgingPreference = "vacation_rental"
	LodgingResort        LodgingPreference = "resort"
	LodgingHostel        LodgingPreference = "hostel"
	LodgingAlreadyBooked LodgingPreference = "already_booked"
)

func (l LodgingPreference) Valid() bool {
	switch l {
	case LodgingHotel, LodgingVacationHome, LodgingResort, LodgingHostel, LodgingAlreadyBooked, "":
		return true
	}
	return false
}

// TransportMode covers both travel-to-destination and local transport choices.
type TransportMode string

const (
	TransportPlane     TransportMode = "plane"
	TransportDrive     TransportMode = "drive"
	TransportTrain     TransportMode = "train"
	TransportCruise    TransportMode = "cruise"
	TransportRentalCar TransportMode = "rental_car"
	TransportPublic    TransportMode = "public_transport"
	TransportWalking   TransportMode = "walking"
	TransportRideshare TransportMode = "rideshare"
)

func (t TransportMode) Valid() bool {
	switch t {
	case TransportPlane, TransportDrive, TransportTrain, TransportCruise,
		TransportRentalCar, TransportPublic, TransportWalking, TransportRideshare, "":
		return true
	}
	return false
}

// TripRequest is the validated set of user-submitted preferences used to
// generate an itinerary. Immutable once handed to the planner; never stored.
type TripRequest struct {
	Destination     string            `json:"destination" binding:"required"`
	StartDate       string            `json:"start_date" binding:"required"`
	EndDate         string            `json:"end_date" binding:"required"`
	Budget          BudgetTier        `json:"budget,omitempty"`
	Lodging         LodgingPreference `json:"lodging,omitempty"`
	TravelTransport TransportMode     `json:"travel_transport,omitempty"`
	LocalTransport  TransportMode     `json:"local_transport,omitempty"`
	Adults          int               `json:"adults"`
	ChildrenAges    []int             `json:"children_ages,omitempty"`
	Interests       []string          `json:"interests,omitempty"`
	SpecialRequests string            `json:"special_requests,omitempty"`
}

// Validate checks required fields and ranges. It must pass before any
// external call is made.
func (r *TripRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("destination is required")
	}

	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return fmt.Errorf("start_date must be formatted as %s", DateLayout)
	}
	end, err := time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return fmt.Errorf("end_date must be formatted as %s", DateLayout)
	}
	if end.Before(start) {
		return fmt.Errorf("end_date %s is before start_date %s", r.EndDate, r.StartDate)
	}

	if r.Adults < 1 {
		return fmt.Errorf("at least one adult traveler is required")
	}
	for _, age := range r.ChildrenAges {
		if age < 0 || age > 17 {
			return fmt.Errorf("child age %d out of range 0-17", age)
		}
	}

	if !r.Budget.Valid() {
		return fmt.Errorf("unknown budget tier %q", r.Budget)
	}
	if !r.Lodging.Valid() {
		return fmt.Errorf("unknown lodging preference %q", r.Lodging)
	}
	if !r.TravelTransport.Valid() {
		return fmt.Errorf("unknown travel transport %q", r.TravelTransport)
	}
	if !r.LocalTransport.Valid() {
		return fmt.Errorf("unknown local transport %q", r.LocalTransport)
	}

	return nil
}

// Days returns the trip duration in days, inclusive of both endpoints.
// Call only after Validate.
func (r *TripRequest) Days() int {
	start, err1 := time.Parse(DateLayout, r.StartDate)
	end, err2 := time.Parse(DateLayout, r.EndDate)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// Dates returns every trip date in order.
func (r *TripRequest) Dates() []string {
	days := r.Days()
	if days <= 0 {
		return nil
	}
	start, _ := time.Parse(DateLayout, r.StartDate)
	out := make([]string, days)
	for i := 0; i < days; i++ {
		out[i] = start.AddDate(0, 0, i).Format(DateLayout)
	}
	return out
}

// Travelers returns the total headcount.
func (r *TripRequest) Travelers() int {
	return r.Adults + len(r.ChildrenAges)
}

// Country extracts the country component from a "City, Country" destination.
// Falls back to the whole destination when there is no comma.
func (r *TripRequest) Country() string {
	return CountryOf(r.Destination)
}

// CountryOf extracts the trailing component of a comma-separated place name.
func CountryOf(destination string) string {
	if idx := strings.LastIndex(destination, ","); idx >= 0 {
		return strings.TrimSpace(destination[idx+1:])
	}
	return strings.TrimSpace(destination)
}
