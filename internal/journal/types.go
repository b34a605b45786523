package journal

// Position is a latitude/longitude pair in decimal degrees.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Account is a registered user. PasswordHash is a bcrypt hash and never
// leaves the process in a projection.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
}

// Review is a rating and comment left on a landmark. Reviewer is set at
// creation and never changes; edits touch only ReviewText and Rating.
type Review struct {
	ID         string `json:"id"`
	Reviewer   string `json:"reviewer"`
	ReviewText string `json:"review_text"`
	Rating     int    `json:"rating"`
}

// Landmark is a point of interest that can receive reviews. Reviews are
// owned by the landmark: they are created, edited, and deleted through it,
// and at most one review per reviewer username is allowed.
type Landmark struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Amenity      string   `json:"amenity"`
	Position     Position `json:"position"`
	OpeningHours string   `json:"opening_hours"`
	Reviews      []Review `json:"reviews,omitempty"`
}

// ReviewByID returns the landmark's review with the given id, or nil.
func (l *Landmark) ReviewByID(id string) *Review {
	for i := range l.Reviews {
		if l.Reviews[i].ID == id {
			return &l.Reviews[i]
		}
	}
	return nil
}

// ReviewByReviewer returns the first review left by the given username, or nil.
func (l *Landmark) ReviewByReviewer(username string) *Review {
	for i := range l.Reviews {
		if l.Reviews[i].Reviewer == username {
			return &l.Reviews[i]
		}
	}
	return nil
}

// Waypoint is a landmark-like stop belonging to a specific roadtrip, with
// trip-specific note and description. Waypoints do not carry reviews.
type Waypoint struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Amenity      string   `json:"amenity"`
	Position     Position `json:"position"`
	OpeningHours string   `json:"opening_hours"`
	Note         string   `json:"note"`
	Description  string   `json:"description"`
}

// Roadtrip is an authored itinerary: ordered waypoints plus trip metadata.
// LegDistances is a caller-supplied list of gaps between consecutive
// waypoints; no geometry is derived from positions and the two lengths are
// not reconciled here.
type Roadtrip struct {
	ID            string
	Title         string
	SubTitle      string
	Author        string
	Description   string
	Category      string
	Summary       string
	TotalDistance float64
	TotalTime     float64
	LegDistances  []float64
	Waypoints     []Waypoint
}

// Magazine is a curated collection referencing roadtrips by id. References
// are not validated against the roadtrip collection and are not cleaned up
// when a roadtrip is deleted.
type Magazine struct {
	ID          string
	Name        string
	Description string
	RoadtripIDs []string
}

// HasRoadtrip reports whether the magazine already references the roadtrip id.
func (m *Magazine) HasRoadtrip(id string) bool {
	for _, rid := range m.RoadtripIDs {
		if rid == id {
			return true
		}
	}
	return false
}

// Favorite marks a roadtrip as starred by a user.
type Favorite struct {
	Username   string
	RoadtripID string
}
