package api

import "github.com/roadbook/roadbook/internal/journal"

// Response projections. The wire field names follow the public API:
// distance_between_waypoints for the leg list, sub_title, opening_hours.

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type profileResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

type waypointResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Position     journal.Position `json:"position"`
	Amenity      string           `json:"amenity"`
	OpeningHours string           `json:"opening_hours"`
	Note         string           `json:"note"`
}

type roadtripResponse struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	SubTitle      string             `json:"sub_title"`
	Author        string             `json:"author"`
	Waypoints     []waypointResponse `json:"waypoints"`
	LegDistances  []float64          `json:"distance_between_waypoints"`
	TotalDistance float64            `json:"total_distance"`
	TotalTime     float64            `json:"total_time"`
	Description   string             `json:"description"`
	Category      string             `json:"category"`
	Summary       string             `json:"summary"`
}

type reviewResponse struct {
	ID           string `json:"id"`
	Reviewer     string `json:"reviewer"`
	ReviewText   string `json:"review_text"`
	Rating       int    `json:"rating"`
	LandmarkID   string `json:"landmark_id"`
	LandmarkName string `json:"landmark_name"`
}

type magazineResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	RoadtripIDs []string `json:"roadtrip_ids"`
}

func projectUser(a *journal.Account) userResponse {
	return userResponse{ID: a.ID, Username: a.Username, Email: a.Email}
}

func projectRoadtrip(rt *journal.Roadtrip) roadtripResponse {
	waypoints := make([]waypointResponse, 0, len(rt.Waypoints))
	for _, wp := range rt.Waypoints {
		waypoints = append(waypoints, waypointResponse{
			ID:           wp.ID,
			Name:         wp.Name,
			Description:  wp.Description,
			Position:     wp.Position,
			Amenity:      wp.Amenity,
			OpeningHours: wp.OpeningHours,
			Note:         wp.Note,
		})
	}

	legs := rt.LegDistances
	if legs == nil {
		legs = []float64{}
	}

	return roadtripResponse{
		ID:            rt.ID,
		Title:         rt.Title,
		SubTitle:      rt.SubTitle,
		Author:        rt.Author,
		Waypoints:     waypoints,
		LegDistances:  legs,
		TotalDistance: rt.TotalDistance,
		TotalTime:     rt.TotalTime,
		Description:   rt.Description,
		Category:      rt.Category,
		Summary:       rt.Summary,
	}
}

func projectRoadtrips(trips []journal.Roadtrip) []roadtripResponse {
	out := make([]roadtripResponse, 0, len(trips))
	for i := range trips {
		out = append(out, projectRoadtrip(&trips[i]))
	}
	return out
}

func projectReview(landmark *journal.Landmark, r *journal.Review) reviewResponse {
	return reviewResponse{
		ID:           r.ID,
		Reviewer:     r.Reviewer,
		ReviewText:   r.ReviewText,
		Rating:       r.Rating,
		LandmarkID:   landmark.ID,
		LandmarkName: landmark.Name,
	}
}

func projectMagazine(mag *journal.Magazine) magazineResponse {
	ids := mag.RoadtripIDs
	if ids == nil {
		ids = []string{}
	}
	return magazineResponse{
		ID:          mag.ID,
		Name:        mag.Name,
		Description: mag.Description,
		RoadtripIDs: ids,
	}
}
