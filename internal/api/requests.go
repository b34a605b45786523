package api

import "github.com/roadbook/roadbook/internal/journal"

// Request bodies are explicit per-endpoint structs validated at the
// boundary. PATCH/PUT bodies use pointer fields: nil means "leave the
// stored value untouched", a present empty string clears the field.

type registerRequest struct {
	Email    string `json:"email" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type waypointRequest struct {
	ID           string           `json:"id" validate:"required"`
	Name         string           `json:"name" validate:"required"`
	Amenity      string           `json:"amenity"`
	Position     journal.Position `json:"position"`
	OpeningHours string           `json:"opening_hours"`
	Note         string           `json:"note"`
	Description  string           `json:"description"`
}

func (wr waypointRequest) toWaypoint() journal.Waypoint {
	return journal.Waypoint{
		ID:           wr.ID,
		Name:         wr.Name,
		Amenity:      wr.Amenity,
		Position:     wr.Position,
		OpeningHours: wr.OpeningHours,
		Note:         wr.Note,
		Description:  wr.Description,
	}
}

func toWaypoints(reqs []waypointRequest) []journal.Waypoint {
	out := make([]journal.Waypoint, 0, len(reqs))
	for _, wr := range reqs {
		out = append(out, wr.toWaypoint())
	}
	return out
}

type createRoadtripRequest struct {
	Title         string            `json:"title"`
	SubTitle      string            `json:"sub_title"`
	Description   string            `json:"description"`
	Category      string            `json:"category"`
	Summary       string            `json:"summary"`
	TotalDistance float64           `json:"total_distance"`
	TotalTime     float64           `json:"total_time"`
	LegDistances  []float64         `json:"distance_between_waypoints"`
	Waypoints     []waypointRequest `json:"waypoints" validate:"omitempty,dive"`
}

type updateRoadtripRequest struct {
	Title         *string            `json:"title"`
	SubTitle      *string            `json:"sub_title"`
	Description   *string            `json:"description"`
	Category      *string            `json:"category"`
	Summary       *string            `json:"summary"`
	TotalDistance *float64           `json:"total_distance"`
	TotalTime     *float64           `json:"total_time"`
	LegDistances  *[]float64         `json:"distance_between_waypoints"`
	Waypoints     *[]waypointRequest `json:"waypoints" validate:"omitempty,dive"`
}

type createReviewRequest struct {
	LandmarkID string `json:"landmark_id" validate:"required"`
	ReviewText string `json:"review_text"`
	Rating     int    `json:"rating"`
}

type updateReviewRequest struct {
	ReviewText *string `json:"review_text"`
	Rating     *int    `json:"rating"`
}

type createLandmarkRequest struct {
	Name         string           `json:"name" validate:"required"`
	Amenity      string           `json:"amenity"`
	Position     journal.Position `json:"position"`
	OpeningHours string           `json:"opening_hours"`
}

type createMagazineRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type updateMagazineRequest struct {
	MagazineID       string  `json:"magazine_id" validate:"required"`
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	AddRoadtripID    *string `json:"add_roadtrip_id"`
	RemoveRoadtripID *string `json:"remove_roadtrip_id"`
}

type deleteMagazineRequest struct {
	MagazineID string `json:"magazine_id" validate:"required"`
}
