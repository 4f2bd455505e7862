package places

// apiFindPlaceResponse is the body of a findplacefromtext call.
type apiFindPlaceResponse struct {
	Candidates   []apiCandidate `json:"candidates"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message"`
}

// apiCandidate is one matching place.
type apiCandidate struct {
	PlaceID          string      `json:"place_id"`
	Name             string      `json:"name"`
	FormattedAddress string      `json:"formatted_address"`
	Geometry         apiGeometry `json:"geometry"`
	Photos           []apiPhoto  `json:"photos"`
}

type apiGeometry struct {
	Location *apiLatLng `json:"location"`
}

type apiLatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type apiPhoto struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

// Status values returned by the Places API.
const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)
