package store

import (
	"context"
	"strings"
	"sync"

	"github.com/roadbook/roadbook/internal/journal"
)

// Memory is the process-lifetime store: one insertion-ordered slice per
// collection, each guarded by its own lock. All lookups are linear scans.
// Values are copied on the way in and out so callers can never mutate
// stored state without going through a store method.
type Memory struct {
	accountsMu sync.RWMutex
	accounts   []journal.Account

	landmarksMu sync.RWMutex
	landmarks   []journal.Landmark

	roadtripsMu sync.RWMutex
	roadtrips   []journal.Roadtrip

	magazinesMu sync.RWMutex
	magazines   []journal.Magazine

	favoritesMu sync.RWMutex
	favorites   []journal.Favorite
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Ping implements the health-check pinger; the memory store is always up.
func (m *Memory) Ping(_ context.Context) error { return nil }

// ---- accounts ----

// CreateAccount appends the account. The uniqueness check and the insert
// run under the same write lock, so two concurrent registrations for one
// username cannot both succeed.
func (m *Memory) CreateAccount(_ context.Context, a *journal.Account) error {
	m.accountsMu.Lock()
	defer m.accountsMu.Unlock()

	for i := range m.accounts {
		if m.accounts[i].Username == a.Username {
			return ErrDuplicate
		}
	}
	m.accounts = append(m.accounts, *a)
	return nil
}

// GetAccountByUsername returns the first account with the given username,
// or nil, nil when there is none.
func (m *Memory) GetAccountByUsername(_ context.Context, username string) (*journal.Account, error) {
	m.accountsMu.RLock()
	defer m.accountsMu.RUnlock()

	for i := range m.accounts {
		if m.accounts[i].Username == username {
			a := m.accounts[i]
			return &a, nil
		}
	}
	return nil, nil
}

// ListAccounts returns all accounts in insertion order.
func (m *Memory) ListAccounts(_ context.Context) ([]journal.Account, error) {
	m.accountsMu.RLock()
	defer m.accountsMu.RUnlock()

	out := make([]journal.Account, len(m.accounts))
	copy(out, m.accounts)
	return out, nil
}

// ---- landmarks and their reviews ----

func copyLandmark(l *journal.Landmark) journal.Landmark {
	out := *l
	if l.Reviews != nil {
		out.Reviews = make([]journal.Review, len(l.Reviews))
		copy(out.Reviews, l.Reviews)
	}
	return out
}

// AddLandmark appends the landmark to the catalog.
func (m *Memory) AddLandmark(_ context.Context, l *journal.Landmark) error {
	m.landmarksMu.Lock()
	defer m.landmarksMu.Unlock()

	m.landmarks = append(m.landmarks, copyLandmark(l))
	return nil
}

// RemoveLandmark deletes the landmark and, by composition, all its reviews.
func (m *Memory) RemoveLandmark(_ context.Context, id string) error {
	m.landmarksMu.Lock()
	defer m.landmarksMu.Unlock()

	for i := range m.landmarks {
		if m.landmarks[i].ID == id {
			m.landmarks = append(m.landmarks[:i], m.landmarks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// GetLandmark returns the landmark with the given id, or nil, nil.
func (m *Memory) GetLandmark(_ context.Context, id string) (*journal.Landmark, error) {
	m.landmarksMu.RLock()
	defer m.landmarksMu.RUnlock()

	for i := range m.landmarks {
		if m.landmarks[i].ID == id {
			l := copyLandmark(&m.landmarks[i])
			return &l, nil
		}
	}
	return nil, nil
}

// GetLandmarkByReviewID returns the landmark owning the review, or nil, nil.
// This is a scan across every landmark's review list.
func (m *Memory) GetLandmarkByReviewID(_ context.Context, reviewID string) (*journal.Landmark, error) {
	m.landmarksMu.RLock()
	defer m.landmarksMu.RUnlock()

	for i := range m.landmarks {
		if m.landmarks[i].ReviewByID(reviewID) != nil {
			l := copyLandmark(&m.landmarks[i])
			return &l, nil
		}
	}
	return nil, nil
}

// ListLandmarks returns the full catalog in insertion order.
func (m *Memory) ListLandmarks(_ context.Context) ([]journal.Landmark, error) {
	m.landmarksMu.RLock()
	defer m.landmarksMu.RUnlock()

	out := make([]journal.Landmark, 0, len(m.landmarks))
	for i := range m.landmarks {
		out = append(out, copyLandmark(&m.landmarks[i]))
	}
	return out, nil
}

// AddReview appends a review to the landmark. The one-review-per-reviewer
// check and the append run under the same write lock.
func (m *Memory) AddReview(_ context.Context, landmarkID string, r *journal.Review) error {
	m.landmarksMu.Lock()
	defer m.landmarksMu.Unlock()

	for i := range m.landmarks {
		if m.landmarks[i].ID != landmarkID {
			continue
		}
		if m.landmarks[i].ReviewByReviewer(r.Reviewer) != nil {
			return ErrDuplicate
		}
		m.landmarks[i].Reviews = append(m.landmarks[i].Reviews, *r)
		return nil
	}
	return ErrNotFound
}

// UpdateReview overwrites the review's text and rating. The reviewer
// identity is immutable and is never touched.
func (m *Memory) UpdateReview(_ context.Context, r *journal.Review) error {
	m.landmarksMu.Lock()
	defer m.landmarksMu.Unlock()

	for i := range m.landmarks {
		if existing := m.landmarks[i].ReviewByID(r.ID); existing != nil {
			existing.ReviewText = r.ReviewText
			existing.Rating = r.Rating
			return nil
		}
	}
	return ErrNotFound
}

// RemoveReview deletes the review from whichever landmark owns it.
func (m *Memory) RemoveReview(_ context.Context, reviewID string) error {
	m.landmarksMu.Lock()
	defer m.landmarksMu.Unlock()

	for i := range m.landmarks {
		reviews := m.landmarks[i].Reviews
		for j := range reviews {
			if reviews[j].ID == reviewID {
				m.landmarks[i].Reviews = append(reviews[:j], reviews[j+1:]...)
				return nil
			}
		}
	}
	return ErrNotFound
}

// ---- roadtrips ----

func copyRoadtrip(rt *journal.Roadtrip) journal.Roadtrip {
	out := *rt
	if rt.LegDistances != nil {
		out.LegDistances = make([]float64, len(rt.LegDistances))
		copy(out.LegDistances, rt.LegDistances)
	}
	if rt.Waypoints != nil {
		out.Waypoints = make([]journal.Waypoint, len(rt.Waypoints))
		copy(out.Waypoints, rt.Waypoints)
	}
	return out
}

// AddRoadtrip appends the roadtrip.
func (m *Memory) AddRoadtrip(_ context.Context, rt *journal.Roadtrip) error {
	m.roadtripsMu.Lock()
	defer m.roadtripsMu.Unlock()

	m.roadtrips = append(m.roadtrips, copyRoadtrip(rt))
	return nil
}

// UpdateRoadtrip replaces the stored roadtrip wholesale, waypoints included.
func (m *Memory) UpdateRoadtrip(_ context.Context, rt *journal.Roadtrip) error {
	m.roadtripsMu.Lock()
	defer m.roadtripsMu.Unlock()

	for i := range m.roadtrips {
		if m.roadtrips[i].ID == rt.ID {
			m.roadtrips[i] = copyRoadtrip(rt)
			return nil
		}
	}
	return ErrNotFound
}

// RemoveRoadtrip deletes the roadtrip. Magazine references to the id are
// deliberately left dangling; see the magazine docs.
func (m *Memory) RemoveRoadtrip(_ context.Context, id string) error {
	m.roadtripsMu.Lock()
	defer m.roadtripsMu.Unlock()

	for i := range m.roadtrips {
		if m.roadtrips[i].ID == id {
			m.roadtrips = append(m.roadtrips[:i], m.roadtrips[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// GetRoadtrip returns the roadtrip with the given id, or nil, nil.
func (m *Memory) GetRoadtrip(_ context.Context, id string) (*journal.Roadtrip, error) {
	m.roadtripsMu.RLock()
	defer m.roadtripsMu.RUnlock()

	for i := range m.roadtrips {
		if m.roadtrips[i].ID == id {
			rt := copyRoadtrip(&m.roadtrips[i])
			return &rt, nil
		}
	}
	return nil, nil
}

// ListRoadtrips returns every roadtrip in insertion order.
func (m *Memory) ListRoadtrips(_ context.Context) ([]journal.Roadtrip, error) {
	m.roadtripsMu.RLock()
	defer m.roadtripsMu.RUnlock()

	out := make([]journal.Roadtrip, 0, len(m.roadtrips))
	for i := range m.roadtrips {
		out = append(out, copyRoadtrip(&m.roadtrips[i]))
	}
	return out, nil
}

// ListRoadtripsByAuthor returns the author's roadtrips in insertion order.
func (m *Memory) ListRoadtripsByAuthor(_ context.Context, username string) ([]journal.Roadtrip, error) {
	m.roadtripsMu.RLock()
	defer m.roadtripsMu.RUnlock()

	out := []journal.Roadtrip{}
	for i := range m.roadtrips {
		if m.roadtrips[i].Author == username {
			out = append(out, copyRoadtrip(&m.roadtrips[i]))
		}
	}
	return out, nil
}

// SearchRoadtrips returns roadtrips whose title contains the keyword.
// The match is case-sensitive.
func (m *Memory) SearchRoadtrips(_ context.Context, keyword string) ([]journal.Roadtrip, error) {
	m.roadtripsMu.RLock()
	defer m.roadtripsMu.RUnlock()

	out := []journal.Roadtrip{}
	for i := range m.roadtrips {
		if strings.Contains(m.roadtrips[i].Title, keyword) {
			out = append(out, copyRoadtrip(&m.roadtrips[i]))
		}
	}
	return out, nil
}

// ---- magazines ----

func copyMagazine(mag *journal.Magazine) journal.Magazine {
	out := *mag
	if mag.RoadtripIDs != nil {
		out.RoadtripIDs = make([]string, len(mag.RoadtripIDs))
		copy(out.RoadtripIDs, mag.RoadtripIDs)
	}
	return out
}

// AddMagazine appends the magazine.
func (m *Memory) AddMagazine(_ context.Context, mag *journal.Magazine) error {
	m.magazinesMu.Lock()
	defer m.magazinesMu.Unlock()

	m.magazines = append(m.magazines, copyMagazine(mag))
	return nil
}

// UpdateMagazine replaces the stored magazine wholesale.
func (m *Memory) UpdateMagazine(_ context.Context, mag *journal.Magazine) error {
	m.magazinesMu.Lock()
	defer m.magazinesMu.Unlock()

	for i := range m.magazines {
		if m.magazines[i].ID == mag.ID {
			m.magazines[i] = copyMagazine(mag)
			return nil
		}
	}
	return ErrNotFound
}

// RemoveMagazine deletes the magazine by id.
func (m *Memory) RemoveMagazine(_ context.Context, id string) error {
	m.magazinesMu.Lock()
	defer m.magazinesMu.Unlock()

	for i := range m.magazines {
		if m.magazines[i].ID == id {
			m.magazines = append(m.magazines[:i], m.magazines[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// GetMagazine returns the magazine with the given id, or nil, nil.
func (m *Memory) GetMagazine(_ context.Context, id string) (*journal.Magazine, error) {
	m.magazinesMu.RLock()
	defer m.magazinesMu.RUnlock()

	for i := range m.magazines {
		if m.magazines[i].ID == id {
			mag := copyMagazine(&m.magazines[i])
			return &mag, nil
		}
	}
	return nil, nil
}

// ListMagazines returns every magazine in insertion order.
func (m *Memory) ListMagazines(_ context.Context) ([]journal.Magazine, error) {
	m.magazinesMu.RLock()
	defer m.magazinesMu.RUnlock()

	out := make([]journal.Magazine, 0, len(m.magazines))
	for i := range m.magazines {
		out = append(out, copyMagazine(&m.magazines[i]))
	}
	return out, nil
}

// ---- favorites ----

// AddFavorite stars a roadtrip for the user. Starring twice is a no-op.
func (m *Memory) AddFavorite(_ context.Context, username, roadtripID string) error {
	m.favoritesMu.Lock()
	defer m.favoritesMu.Unlock()

	for _, f := range m.favorites {
		if f.Username == username && f.RoadtripID == roadtripID {
			return nil
		}
	}
	m.favorites = append(m.favorites, journal.Favorite{Username: username, RoadtripID: roadtripID})
	return nil
}

// RemoveFavorite unstars a roadtrip; unstarring something never starred is
// a no-op.
func (m *Memory) RemoveFavorite(_ context.Context, username, roadtripID string) error {
	m.favoritesMu.Lock()
	defer m.favoritesMu.Unlock()

	for i, f := range m.favorites {
		if f.Username == username && f.RoadtripID == roadtripID {
			m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListFavorites returns the roadtrip ids the user has starred, oldest first.
func (m *Memory) ListFavorites(_ context.Context, username string) ([]string, error) {
	m.favoritesMu.RLock()
	defer m.favoritesMu.RUnlock()

	out := []string{}
	for _, f := range m.favorites {
		if f.Username == username {
			out = append(out, f.RoadtripID)
		}
	}
	return out, nil
}
