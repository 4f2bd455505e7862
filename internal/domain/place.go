package domain

// Place is the result of a places lookup.
type Place struct {
	PlaceID     string
	Name        string
	Address     string
	PhotoURL    string
	Coordinates *Coordinates
}
