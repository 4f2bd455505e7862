// Package provider holds what the itinerary generators share: the prompt
// sent to the model and the retry policy around the call.
package provider

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

// ItineraryPrompt renders the generation prompt for a trip. The requested
// JSON shape is the one the seed normalizer reads.
func ItineraryPrompt(trip domain.Trip) string {
	cuisines := strings.Join(trip.Cuisines, ", ")
	if cuisines == "" {
		cuisines = "any"
	}
	interests := strings.Join(trip.Interests, ", ")
	if interests == "" {
		interests = "general sightseeing"
	}
	budget := "flexible"
	if trip.Budget.Total > 0 {
		budget = strconv.FormatFloat(trip.Budget.Total, 'f', -1, 64) + " " + trip.Budget.Currency
	}

	return fmt.Sprintf(`You are a travel planning assistant. Create a detailed travel itinerary in JSON format.

Trip Details:
Location: %s
Duration: %d days
Travelers: %d
Budget: %s
Interests: %s
Cuisines: %s
StartDate: %s
EndDate: %s

Return ONLY the following JSON structure with no additional text:

{
  "tripDetails": {
    "destination": {"name": string, "coordinates": {"lat": number, "lng": number}},
    "startDate": "YYYY-MM-DD",
    "endDate": "YYYY-MM-DD",
    "travelers": number,
    "budget": {"currency": string, "total": number}
  },
  "days": [
    {
      "date": "YYYY-MM-DD",
      "sections": {
        "activities": [ITEM],
        "hotels": [ITEM],
        "restaurants": [ITEM]
      }
    }
  ]
}

where ITEM is:

{
  "title": string,
  "description": string,
  "location": {"name": string, "address": string, "coordinates": {"lat": number, "lng": number}},
  "startTime": "HH:MM",
  "endTime": "HH:MM",
  "duration": string,
  "price": number,
  "priceLevel": string,
  "rating": number,
  "userRatingsTotal": number,
  "contact": {"phone": string, "website": string},
  "operatingHours": {"isOpen": boolean, "periods": [{"day": string, "hours": string}]},
  "bookingInfo": string,
  "cuisine": string
}

Rules:
1. Return ONLY valid JSON
2. No markdown, no comments, no explanations
3. One entry in "days" per calendar day from StartDate to EndDate
4. Include 1-2 hotels per day
5. Include 3-4 activities per day
6. Include 2-3 restaurants per day
7. Use real place names and addresses
8. "price" is the cost per person as a plain number, matched to the budget
9. Keep descriptions concise`,
		trip.Destination.DisplayName(),
		trip.DayCount(),
		trip.Travelers,
		budget,
		interests,
		cuisines,
		trip.StartDate,
		trip.EndDate,
	)
}
