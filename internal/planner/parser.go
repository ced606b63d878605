// internal/planner/parser.go
package planner

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"gotravel/internal/models"
)

// itinerarySchema is validated before unmarshaling so a malformed model
// response fails with a useful message instead of a half-empty struct.
const itinerarySchema = `{
  "type": "object",
  "required": ["destination", "start_date", "end_date", "days"],
  "properties": {
    "destination": {"type": "string", "minLength": 1},
    "start_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
    "end_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
    "local_currency": {"type": "string"},
    "days": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["day", "activities"],
        "properties": {
          "day": {"type": "integer", "minimum": 1},
          "date": {"type": "string"},
          "title": {"type": "string"},
          "activities": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["time", "description"],
              "properties": {
                "time": {"type": "string", "minLength": 1},
                "description": {"type": "string", "minLength": 1},
                "location": {"type": "string"},
                "address": {"type": "string"},
                "estimated_cost": {"type": "number", "minimum": 0},
                "cost_display": {"type": "string"}
              }
            }
          }
        }
      }
    },
    "daily_budget": {"type": "string"},
    "safety_info": {"type": "array", "items": {"type": "string"}},
    "wellness_info": {"type": "array", "items": {"type": "string"}}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(itinerarySchema)

var (
	codeFenceRe  = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")
	mdHeaderRe   = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	mdBoldRe     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	mdAsteriskRe = regexp.MustCompile(`\*`)
	blankRunsRe  = regexp.MustCompile(`\n\s*\n\s*\n+`)
)

// ParseItinerary decodes and validates a model response into an itinerary.
// Code fences around the JSON are tolerated; anything else malformed is an
// error for the caller to surface.
func ParseItinerary(raw string) (*models.Itinerary, error) {
	trimmed := strings.TrimSpace(raw)
	if m := codeFenceRe.FindStringSubmatch(trimmed); m != nil {
		trimmed = m[1]
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(trimmed))
	if err != nil {
		return nil, fmt.Errorf("itinerary response is not valid JSON: %w", err)
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			issues = append(issues, e.String())
		}
		return nil, fmt.Errorf("itinerary response failed schema validation: %s", strings.Join(issues, "; "))
	}

	var it models.Itinerary
	if err := json.Unmarshal([]byte(trimmed), &it); err != nil {
		return nil, fmt.Errorf("itinerary response unmarshal: %w", err)
	}

	for di := range it.Days {
		it.Days[di].Title = CleanText(it.Days[di].Title)
		for ai := range it.Days[di].Activities {
			a := &it.Days[di].Activities[ai]
			a.Description = CleanText(a.Description)
		}
	}
	it.DailyBudget = CleanText(it.DailyBudget)
	for i, s := range it.SafetyInfo {
		it.SafetyInfo[i] = CleanText(s)
	}
	for i, s := range it.WellnessInfo {
		it.WellnessInfo[i] = CleanText(s)
	}

	return &it, nil
}

// CleanText strips stray markdown decoration from model output while
// preserving the content itself.
func CleanText(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	cleaned := mdHeaderRe.ReplaceAllString(text, "")
	cleaned = mdBoldRe.ReplaceAllString(cleaned, "$1")
	cleaned = mdAsteriskRe.ReplaceAllString(cleaned, "")
	cleaned = blankRunsRe.ReplaceAllString(cleaned, "\n\n")

	lines := strings.Split(cleaned, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
