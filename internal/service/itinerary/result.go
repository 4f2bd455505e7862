package itinerary

import "github.com/heartmarshall/tripplanner-backend/internal/domain"

// ListResult is one page of saved itineraries.
type ListResult struct {
	Items []domain.ItinerarySummary `json:"items"`
	Total int                       `json:"total"`
}

// ExportResult locates an exported snapshot.
type ExportResult struct {
	Key  string `json:"key"`
	Size int    `json:"size"`
}
