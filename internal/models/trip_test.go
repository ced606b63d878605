package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *TripRequest {
	return &TripRequest{
		Destination: "Paris, France",
		StartDate:   "2026-09-10",
		EndDate:     "2026-09-12",
		Budget:      BudgetMidRange,
		Adults:      2,
	}
}

func TestTripRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TripRequest)
		wantErr string
	}{
		{
			name:   "valid request",
			mutate: func(r *TripRequest) {},
		},
		{
			name:    "missing destination",
			mutate:  func(r *TripRequest) { r.Destination = "  " },
			wantErr: "destination is required",
		},
		{
			name:    "bad start date format",
			mutate:  func(r *TripRequest) { r.StartDate = "10/09/2026" },
			wantErr: "start_date",
		},
		{
			name:    "bad end date format",
			mutate:  func(r *TripRequest) { r.EndDate = "sometime" },
			wantErr: "end_date",
		},
		{
			name: "end before start",
			mutate: func(r *TripRequest) {
				r.StartDate = "2026-09-12"
				r.EndDate = "2026-09-10"
			},
			wantErr: "before start_date",
		},
		{
			name:   "same day trip is valid",
			mutate: func(r *TripRequest) { r.EndDate = r.StartDate },
		},
		{
			name:    "no adults",
			mutate:  func(r *TripRequest) { r.Adults = 0 },
			wantErr: "at least one adult",
		},
		{
			name:    "child age out of range",
			mutate:  func(r *TripRequest) { r.ChildrenAges = []int{5, 19} },
			wantErr: "out of range",
		},
		{
			name:    "unknown budget tier",
			mutate:  func(r *TripRequest) { r.Budget = "extravagant" },
			wantErr: "budget tier",
		},
		{
			name:    "unknown lodging",
			mutate:  func(r *TripRequest) { r.Lodging = "castle" },
			wantErr: "lodging",
		},
		{
			name:    "unknown transport",
			mutate:  func(r *TripRequest) { r.TravelTransport = "teleport" },
			wantErr: "travel transport",
		},
		{
			name:   "empty enums are valid",
			mutate: func(r *TripRequest) { r.Budget = ""; r.Lodging = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestTripRequest_Days(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"three day trip", "2026-09-10", "2026-09-12", 3},
		{"single day", "2026-09-10", "2026-09-10", 1},
		{"across month boundary", "2026-09-29", "2026-10-02", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &TripRequest{StartDate: tt.start, EndDate: tt.end}
			assert.Equal(t, tt.want, req.Days())
		})
	}
}

func TestTripRequest_Dates(t *testing.T) {
	req := &TripRequest{StartDate: "2026-09-10", EndDate: "2026-09-12"}
	assert.Equal(t, []string{"2026-09-10", "2026-09-11", "2026-09-12"}, req.Dates())
}

func TestTripRequest_Travelers(t *testing.T) {
	req := validRequest()
	req.ChildrenAges = []int{4, 9}
	assert.Equal(t, 4, req.Travelers())
}

func TestCountryOf(t *testing.T) {
	assert.Equal(t, "France", CountryOf("Paris, France"))
	assert.Equal(t, "Japan", CountryOf("Kyoto , Japan"))
	assert.Equal(t, "Tokyo", CountryOf("Tokyo"))
}
