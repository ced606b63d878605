// internal/planner/prompt.go
package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"gotravel/internal/models"
)

// BuildGenerationPrompt assembles the generation prompt from the traveler's
// preferences plus whatever live location context is available. The model is
// instructed to answer with JSON matching the itinerary schema.
func BuildGenerationPrompt(req *models.TripRequest, localCurrency string, loc *models.LocationInfo) string {
	var b strings.Builder

	peopleText := travelersText(req)
	interests := "general sightseeing"
	if len(req.Interests) > 0 {
		interests = strings.Join(req.Interests, ", ")
	}

	fmt.Fprintf(&b, "As a travel planner, create a detailed %d-day travel itinerary for %s from %s to %s for %s.\n\n",
		req.Days(), req.Destination, req.StartDate, req.EndDate, peopleText)

	b.WriteString("TRAVELER PREFERENCES:\n")
	fmt.Fprintf(&b, "- Group size: %s\n", peopleText)
	fmt.Fprintf(&b, "- Interests: %s\n", interests)
	writeBudgetContext(&b, req.Budget)
	writeLodgingContext(&b, req.Lodging)
	writeTransportContext(&b, req)
	writeGroupContext(&b, req)
	if req.SpecialRequests != "" {
		fmt.Fprintf(&b, "- Special considerations: %s\n", req.SpecialRequests)
	}

	b.WriteString("\nCURRENCY & PRICING REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Local currency for %s: %s\n", req.Destination, localCurrency)
	fmt.Fprintf(&b, "- ALL prices must be in the local currency (%s); set estimated_cost to the numeric amount and cost_display to \"%s100 (~$75 USD)\" style text\n", localCurrency, localCurrency)
	fmt.Fprintf(&b, "- Consider group size when calculating total costs (multiply individual prices by %d)\n", req.Travelers())
	b.WriteString("- Mention any group discounts available for attractions or activities\n")

	writeLocationContext(&b, loc)

	b.WriteString("\nCONTENT REQUIREMENTS:\n")
	b.WriteString("- Provide a day-by-day breakdown covering every trip date\n")
	b.WriteString("- Organize each day's activities by time of day (morning, afternoon, evening)\n")
	b.WriteString("- Suggest actual restaurant names and local cuisine with realistic menu price ranges\n")
	b.WriteString("- Provide exact full street addresses for all attractions, restaurants, and hotels\n")
	b.WriteString("- Add transportation tips between locations with costs\n")
	b.WriteString("- Include a daily budget estimate covering the whole group\n")
	b.WriteString("- Include safety tips: areas to avoid, common scams, emergency contact numbers, cultural customs, money and document safety\n")
	b.WriteString("- Include stress relief and wellness suggestions: spas, parks, quiet spots, jet lag and travel anxiety tips\n")
	b.WriteString("- Consider opening hours and seasonal factors, and the approximate time each activity needs\n")

	b.WriteString("\nOUTPUT FORMAT:\n")
	b.WriteString("Respond with a single JSON object and nothing else. No markdown, no code fences, no commentary. The object must match this shape exactly:\n")
	b.WriteString(promptSchemaExample(req, localCurrency))
	fmt.Fprintf(&b, "\nThe days array must contain exactly %d entries, one per date from %s to %s in order.\n",
		req.Days(), req.StartDate, req.EndDate)

	return b.String()
}

// BuildRefinementPrompt asks the model to rework an existing itinerary per
// the traveler's feedback, keeping the same JSON shape.
func BuildRefinementPrompt(it *models.Itinerary, feedback string) string {
	current, _ := json.Marshal(it)

	var b strings.Builder
	fmt.Fprintf(&b, "The user has requested changes to their travel itinerary for %s.\n\n", it.Destination)
	b.WriteString("ORIGINAL ITINERARY (JSON):\n")
	b.Write(current)
	b.WriteString("\n\nUSER FEEDBACK:\n")
	b.WriteString(feedback)
	b.WriteString("\n\nUpdate the itinerary based on the user's feedback. Keep the same JSON structure and field names, ")
	b.WriteString("the same destination and date range, and the same number of days. Maintain the quality and detail ")
	b.WriteString("of the original while addressing the specific feedback. Respond with the full updated JSON object ")
	b.WriteString("and nothing else — no markdown, no code fences, no commentary.\n")
	return b.String()
}

func travelersText(req *models.TripRequest) string {
	total := req.Travelers()
	noun := "people"
	if total == 1 {
		noun = "person"
	}
	text := fmt.Sprintf("%d %s", total, noun)
	if n := len(req.ChildrenAges); n > 0 {
		childNoun := "children"
		if n == 1 {
			childNoun = "child"
		}
		text += fmt.Sprintf(" (including %d %s)", n, childNoun)
	}
	return text
}

func writeGroupContext(b *strings.Builder, req *models.TripRequest) {
	switch {
	case len(req.ChildrenAges) > 0:
		b.WriteString("- Plan family-friendly activities suitable for children\n")
		b.WriteString("- Consider child safety, accessibility, and age-appropriate attractions\n")
	case req.Travelers() == 1:
		b.WriteString("- Plan activities suitable for solo travelers\n")
	case req.Travelers() == 2:
		b.WriteString("- Plan romantic and couple-friendly activities\n")
	case req.Travelers() <= 4:
		b.WriteString("- Plan activities suitable for small groups and families\n")
	default:
		b.WriteString("- Plan activities suitable for larger groups, consider group discounts and reservations\n")
	}
}

func writeBudgetContext(b *strings.Builder, budget models.BudgetTier) {
	switch budget {
	case models.BudgetEconomy:
		b.WriteString("- Focus on budget-friendly options, free attractions, and affordable accommodations\n")
	case models.BudgetMidRange:
		b.WriteString("- Include mid-range accommodations and dining options\n")
	case models.BudgetLuxury:
		b.WriteString("- Include luxury accommodations, fine dining, and premium experiences\n")
	}
}

func writeLodgingContext(b *strings.Builder, lodging models.LodgingPreference) {
	switch lodging {
	case models.LodgingHotel:
		b.WriteString("- Recommend hotels with appropriate amenities for the group size\n")
	case models.LodgingVacationHome:
		b.WriteString("- Suggest vacation rental properties suitable for the group\n")
	case models.LodgingResort:
		b.WriteString("- Focus on resort accommodations with inclusive amenities\n")
	case models.LodgingHostel:
		b.WriteString("- Recommend hostels with private rooms or dorms as appropriate\n")
	case models.LodgingAlreadyBooked:
		b.WriteString("- Accommodation is already booked, focus on activities and dining\n")
	}
}

func writeTransportContext(b *strings.Builder, req *models.TripRequest) {
	if req.TravelTransport != "" {
		fmt.Fprintf(b, "- Travel method: %s", req.TravelTransport)
		switch req.TravelTransport {
		case models.TransportPlane:
			b.WriteString(" (include airport transfer recommendations)")
		case models.TransportDrive:
			b.WriteString(" (include parking information and scenic route suggestions)")
		case models.TransportTrain:
			b.WriteString(" (include train station information and connections)")
		case models.TransportCruise:
			b.WriteString(" (include port information and shore excursions)")
		}
		b.WriteString("\n")
	}
	if req.LocalTransport != "" {
		fmt.Fprintf(b, "- Local transportation: %s", req.LocalTransport)
		switch req.LocalTransport {
		case models.TransportRentalCar:
			b.WriteString(" (include rental locations, parking, and driving tips)")
		case models.TransportPublic:
			b.WriteString(" (include transit passes, routes, and schedules)")
		case models.TransportWalking:
			b.WriteString(" (focus on walkable attractions and neighborhoods)")
		case models.TransportRideshare:
			b.WriteString(" (include ride-hailing apps and taxi information)")
		}
		b.WriteString("\n")
	}
}

// writeLocationContext surfaces live data so the model grounds suggestions
// in real places and current conditions.
func writeLocationContext(b *strings.Builder, loc *models.LocationInfo) {
	if loc == nil {
		return
	}
	b.WriteString("\nLIVE DESTINATION CONTEXT:\n")
	if loc.Address != "" {
		fmt.Fprintf(b, "- Resolved location: %s\n", loc.Address)
	}
	if loc.Timezone != nil && loc.Timezone.TimeZoneID != "" {
		fmt.Fprintf(b, "- Time zone: %s\n", loc.Timezone.TimeZoneID)
	}
	if loc.Weather != nil {
		fmt.Fprintf(b, "- Current weather: %.0f°C, %s\n", loc.Weather.Temperature, loc.Weather.Description)
	}
	if len(loc.Attractions) > 0 {
		names := make([]string, 0, len(loc.Attractions))
		for i, p := range loc.Attractions {
			if i >= 8 {
				break
			}
			names = append(names, p.Name)
		}
		fmt.Fprintf(b, "- Highly rated attractions nearby: %s\n", strings.Join(names, ", "))
	}
	if len(loc.Restaurants) > 0 {
		names := make([]string, 0, len(loc.Restaurants))
		for i, p := range loc.Restaurants {
			if i >= 8 {
				break
			}
			names = append(names, p.Name)
		}
		fmt.Fprintf(b, "- Well-reviewed restaurants nearby: %s\n", strings.Join(names, ", "))
	}
}

func promptSchemaExample(req *models.TripRequest, localCurrency string) string {
	return fmt.Sprintf(`{
  "destination": %q,
  "start_date": %q,
  "end_date": %q,
  "local_currency": %q,
  "days": [
    {
      "day": 1,
      "date": %q,
      "title": "short headline for the day",
      "activities": [
        {
          "time": "morning",
          "description": "what to do and why it fits the travelers",
          "location": "place name",
          "address": "complete street address, city, postal code, country",
          "estimated_cost": 25.0,
          "cost_display": "%s25.00 (~$27.00 USD)"
        }
      ]
    }
  ],
  "daily_budget": "estimated total daily cost for the group in %s and USD",
  "safety_info": ["safety tip", "emergency numbers", "areas to avoid"],
  "wellness_info": ["stress relief suggestion", "jet lag tip"]
}`, req.Destination, req.StartDate, req.EndDate, localCurrency, req.StartDate, localCurrency, localCurrency)
}
