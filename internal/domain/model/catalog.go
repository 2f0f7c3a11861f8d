package model

import "github.com/okian/vibematch/internal/domain/vibe"

// CatalogItem is a read-only content entry with its own mood vector.
type CatalogItem struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Year     int         `json:"year,omitempty"`
	Rating   float64     `json:"rating,omitempty"`
	Votes    int         `json:"votes,omitempty"`
	Genres   []string    `json:"genres,omitempty"`
	Director string      `json:"director,omitempty"`
	Runtime  int         `json:"runtime,omitempty"` // minutes
	Overview string      `json:"overview,omitempty"`
	Vector   vibe.Vector `json:"vector"`
}

// Recommendation is one ranked catalog item. Score is in [0,1].
type Recommendation struct {
	Item   CatalogItem `json:"item"`
	Score  float64     `json:"score"`
	Reason string      `json:"reason"`
}
