package graphql

import (
	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/service/itinerary"
)

// TripInput is the planning form as sent by GraphQL clients.
type TripInput struct {
	Destination domain.Destination `json:"destination"`
	StartDate   domain.Date        `json:"startDate"`
	EndDate     domain.Date        `json:"endDate"`
	Interests   []string           `json:"interests"`
	Travelers   int                `json:"travelers"`
	Cuisines    []string           `json:"cuisines"`
	Budget      domain.TripBudget  `json:"budget"`
}

func (in TripInput) toService() itinerary.StartTripInput {
	return itinerary.StartTripInput{
		Destination: in.Destination,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Interests:   in.Interests,
		Travelers:   in.Travelers,
		Cuisines:    in.Cuisines,
		Budget:      in.Budget,
	}
}

// Argument shapes, one per root field that takes arguments. Field names
// follow the schema.

type tripArgs struct {
	Input TripInput `json:"input"`
}

type pageArgs struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type seedArgs struct {
	Document string `json:"document"`
}

type dayArgs struct {
	Day int `json:"day"`
}

type addItemArgs struct {
	Day     int         `json:"day"`
	Section string      `json:"section"`
	Item    domain.Item `json:"item"`
}

type removeItemArgs struct {
	Day      int    `json:"day"`
	Section  string `json:"section"`
	Position int    `json:"position"`
}

type reorderArgs struct {
	Day     int    `json:"day"`
	Section string `json:"section"`
	From    int    `json:"from"`
	To      int    `json:"to"`
}

type idArgs struct {
	ID string `json:"id"`
}

type navigateArgs struct {
	Continuation bool `json:"continuation"`
}

type shareArgs struct {
	Recipients []string          `json:"recipients"`
	Visibility domain.Visibility `json:"visibility"`
}

type statusArgs struct {
	Status domain.ItineraryStatus `json:"status"`
}
