package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roadbook/roadbook/internal/journal"
)

// Querier abstracts the subset of pgxpool.Pool used by Postgres.
// This allows injection of a mock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres is the persistent store implementation. It mirrors the memory
// store's semantics: insertion order (the seq column), first-match lookups,
// wholesale roadtrip/magazine replacement. Uniqueness rules are carried by
// unique indexes instead of lock-guarded scans.
type Postgres struct {
	q Querier
}

// NewPostgres constructs a Postgres store backed by the given pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{q: pool}
}

// NewPostgresWithQuerier constructs a Postgres store with a custom Querier (for tests).
func NewPostgresWithQuerier(q Querier) *Postgres {
	return &Postgres{q: q}
}

// isUniqueViolation reports whether err is a Postgres unique-index violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ---- accounts ----

func (p *Postgres) CreateAccount(ctx context.Context, a *journal.Account) error {
	const q = `
		INSERT INTO accounts (id, username, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := p.q.Exec(ctx, q, a.ID, a.Username, a.Email, a.PasswordHash, string(a.Role)); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting account %s: %w", a.Username, err)
	}
	return nil
}

func (p *Postgres) GetAccountByUsername(ctx context.Context, username string) (*journal.Account, error) {
	const q = `
		SELECT id, username, email, password_hash, role
		FROM accounts
		WHERE username = $1
	`
	var a journal.Account
	var role string
	err := p.q.QueryRow(ctx, q, username).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying account %s: %w", username, err)
	}
	a.Role = journal.Role(role)
	return &a, nil
}

func (p *Postgres) ListAccounts(ctx context.Context) ([]journal.Account, error) {
	const q = `
		SELECT id, username, email, password_hash, role
		FROM accounts
		ORDER BY seq
	`
	rows, err := p.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	out := []journal.Account{}
	for rows.Next() {
		var a journal.Account
		var role string
		if err := rows.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &role); err != nil {
			return nil, fmt.Errorf("scanning account row: %w", err)
		}
		a.Role = journal.Role(role)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}
	return out, nil
}

// ---- landmarks and their reviews ----

func (p *Postgres) AddLandmark(ctx context.Context, l *journal.Landmark) error {
	const q = `
		INSERT INTO landmarks (id, name, amenity, lat, lon, opening_hours)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := p.q.Exec(ctx, q, l.ID, l.Name, l.Amenity, l.Position.Lat, l.Position.Lon, l.OpeningHours); err != nil {
		return fmt.Errorf("inserting landmark %s: %w", l.ID, err)
	}
	return nil
}

func (p *Postgres) RemoveLandmark(ctx context.Context, id string) error {
	tag, err := p.q.Exec(ctx, `DELETE FROM landmarks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting landmark %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) GetLandmark(ctx context.Context, id string) (*journal.Landmark, error) {
	const q = `
		SELECT id, name, amenity, lat, lon, opening_hours
		FROM landmarks
		WHERE id = $1
	`
	var l journal.Landmark
	err := p.q.QueryRow(ctx, q, id).Scan(&l.ID, &l.Name, &l.Amenity, &l.Position.Lat, &l.Position.Lon, &l.OpeningHours)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying landmark %s: %w", id, err)
	}

	reviews, err := p.reviewsForLandmark(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Reviews = reviews
	return &l, nil
}

func (p *Postgres) GetLandmarkByReviewID(ctx context.Context, reviewID string) (*journal.Landmark, error) {
	var landmarkID string
	err := p.q.QueryRow(ctx, `SELECT landmark_id FROM reviews WHERE id = $1`, reviewID).Scan(&landmarkID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying review %s: %w", reviewID, err)
	}
	return p.GetLandmark(ctx, landmarkID)
}

func (p *Postgres) ListLandmarks(ctx context.Context) ([]journal.Landmark, error) {
	const q = `
		SELECT id, name, amenity, lat, lon, opening_hours
		FROM landmarks
		ORDER BY seq
	`
	rows, err := p.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying landmarks: %w", err)
	}
	defer rows.Close()

	out := []journal.Landmark{}
	for rows.Next() {
		var l journal.Landmark
		if err := rows.Scan(&l.ID, &l.Name, &l.Amenity, &l.Position.Lat, &l.Position.Lon, &l.OpeningHours); err != nil {
			return nil, fmt.Errorf("scanning landmark row: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating landmark rows: %w", err)
	}

	for i := range out {
		reviews, err := p.reviewsForLandmark(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Reviews = reviews
	}
	return out, nil
}

func (p *Postgres) reviewsForLandmark(ctx context.Context, landmarkID string) ([]journal.Review, error) {
	const q = `
		SELECT id, reviewer, review_text, rating
		FROM reviews
		WHERE landmark_id = $1
		ORDER BY seq
	`
	rows, err := p.q.Query(ctx, q, landmarkID)
	if err != nil {
		return nil, fmt.Errorf("querying reviews for landmark %s: %w", landmarkID, err)
	}
	defer rows.Close()

	var out []journal.Review
	for rows.Next() {
		var r journal.Review
		if err := rows.Scan(&r.ID, &r.Reviewer, &r.ReviewText, &r.Rating); err != nil {
			return nil, fmt.Errorf("scanning review row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating review rows: %w", err)
	}
	return out, nil
}

func (p *Postgres) AddReview(ctx context.Context, landmarkID string, r *journal.Review) error {
	const q = `
		INSERT INTO reviews (id, landmark_id, reviewer, review_text, rating)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := p.q.Exec(ctx, q, r.ID, landmarkID, r.Reviewer, r.ReviewText, r.Rating); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrNotFound
		}
		return fmt.Errorf("inserting review %s: %w", r.ID, err)
	}
	return nil
}

func (p *Postgres) UpdateReview(ctx context.Context, r *journal.Review) error {
	const q = `
		UPDATE reviews
		SET review_text = $2, rating = $3
		WHERE id = $1
	`
	tag, err := p.q.Exec(ctx, q, r.ID, r.ReviewText, r.Rating)
	if err != nil {
		return fmt.Errorf("updating review %s: %w", r.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) RemoveReview(ctx context.Context, reviewID string) error {
	tag, err := p.q.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return fmt.Errorf("deleting review %s: %w", reviewID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- roadtrips ----

func (p *Postgres) AddRoadtrip(ctx context.Context, rt *journal.Roadtrip) error {
	legs, waypoints, err := marshalRoadtripLists(rt)
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO roadtrips
			(id, title, sub_title, author, description, category, summary,
			 total_distance, total_time, leg_distances, waypoints)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	if _, err := p.q.Exec(ctx, q,
		rt.ID, rt.Title, rt.SubTitle, rt.Author, rt.Description, rt.Category, rt.Summary,
		rt.TotalDistance, rt.TotalTime, legs, waypoints,
	); err != nil {
		return fmt.Errorf("inserting roadtrip %s: %w", rt.ID, err)
	}
	return nil
}

func (p *Postgres) UpdateRoadtrip(ctx context.Context, rt *journal.Roadtrip) error {
	legs, waypoints, err := marshalRoadtripLists(rt)
	if err != nil {
		return err
	}

	const q = `
		UPDATE roadtrips
		SET title = $2, sub_title = $3, description = $4, category = $5,
		    summary = $6, total_distance = $7, total_time = $8,
		    leg_distances = $9, waypoints = $10
		WHERE id = $1
	`
	tag, err := p.q.Exec(ctx, q,
		rt.ID, rt.Title, rt.SubTitle, rt.Description, rt.Category,
		rt.Summary, rt.TotalDistance, rt.TotalTime, legs, waypoints,
	)
	if err != nil {
		return fmt.Errorf("updating roadtrip %s: %w", rt.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) RemoveRoadtrip(ctx context.Context, id string) error {
	tag, err := p.q.Exec(ctx, `DELETE FROM roadtrips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting roadtrip %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const roadtripColumns = `
	SELECT id, title, sub_title, author, description, category, summary,
	       total_distance, total_time, leg_distances, waypoints
	FROM roadtrips
`

func (p *Postgres) GetRoadtrip(ctx context.Context, id string) (*journal.Roadtrip, error) {
	rt, err := scanRoadtrip(p.q.QueryRow(ctx, roadtripColumns+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying roadtrip %s: %w", id, err)
	}
	return rt, nil
}

func (p *Postgres) ListRoadtrips(ctx context.Context) ([]journal.Roadtrip, error) {
	return p.queryRoadtrips(ctx, roadtripColumns+` ORDER BY seq`)
}

func (p *Postgres) ListRoadtripsByAuthor(ctx context.Context, username string) ([]journal.Roadtrip, error) {
	return p.queryRoadtrips(ctx, roadtripColumns+` WHERE author = $1 ORDER BY seq`, username)
}

// SearchRoadtrips matches the keyword as a case-sensitive substring of the
// title, same as the memory store's strings.Contains scan.
func (p *Postgres) SearchRoadtrips(ctx context.Context, keyword string) ([]journal.Roadtrip, error) {
	return p.queryRoadtrips(ctx,
		roadtripColumns+` WHERE position($1 in title) > 0 ORDER BY seq`, keyword)
}

func (p *Postgres) queryRoadtrips(ctx context.Context, q string, args ...any) ([]journal.Roadtrip, error) {
	rows, err := p.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying roadtrips: %w", err)
	}
	defer rows.Close()

	out := []journal.Roadtrip{}
	for rows.Next() {
		rt, err := scanRoadtrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning roadtrip row: %w", err)
		}
		out = append(out, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roadtrip rows: %w", err)
	}
	return out, nil
}

func marshalRoadtripLists(rt *journal.Roadtrip) ([]byte, []byte, error) {
	legs := rt.LegDistances
	if legs == nil {
		legs = []float64{}
	}
	legsJSON, err := json.Marshal(legs)
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling leg distances for roadtrip %s: %w", rt.ID, err)
	}

	waypoints := rt.Waypoints
	if waypoints == nil {
		waypoints = []journal.Waypoint{}
	}
	waypointsJSON, err := json.Marshal(waypoints)
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling waypoints for roadtrip %s: %w", rt.ID, err)
	}

	return legsJSON, waypointsJSON, nil
}

func scanRoadtrip(row pgx.Row) (*journal.Roadtrip, error) {
	var rt journal.Roadtrip
	var legsJSON, waypointsJSON []byte

	if err := row.Scan(
		&rt.ID, &rt.Title, &rt.SubTitle, &rt.Author, &rt.Description,
		&rt.Category, &rt.Summary, &rt.TotalDistance, &rt.TotalTime,
		&legsJSON, &waypointsJSON,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(legsJSON, &rt.LegDistances); err != nil {
		return nil, fmt.Errorf("unmarshaling leg distances for roadtrip %s: %w", rt.ID, err)
	}
	if err := json.Unmarshal(waypointsJSON, &rt.Waypoints); err != nil {
		return nil, fmt.Errorf("unmarshaling waypoints for roadtrip %s: %w", rt.ID, err)
	}
	return &rt, nil
}

// ---- magazines ----

func (p *Postgres) AddMagazine(ctx context.Context, mag *journal.Magazine) error {
	idsJSON, err := marshalRoadtripIDs(mag)
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO magazines (id, name, description, roadtrip_ids)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := p.q.Exec(ctx, q, mag.ID, mag.Name, mag.Description, idsJSON); err != nil {
		return fmt.Errorf("inserting magazine %s: %w", mag.ID, err)
	}
	return nil
}

func (p *Postgres) UpdateMagazine(ctx context.Context, mag *journal.Magazine) error {
	idsJSON, err := marshalRoadtripIDs(mag)
	if err != nil {
		return err
	}

	const q = `
		UPDATE magazines
		SET name = $2, description = $3, roadtrip_ids = $4
		WHERE id = $1
	`
	tag, err := p.q.Exec(ctx, q, mag.ID, mag.Name, mag.Description, idsJSON)
	if err != nil {
		return fmt.Errorf("updating magazine %s: %w", mag.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) RemoveMagazine(ctx context.Context, id string) error {
	tag, err := p.q.Exec(ctx, `DELETE FROM magazines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting magazine %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) GetMagazine(ctx context.Context, id string) (*journal.Magazine, error) {
	const q = `
		SELECT id, name, description, roadtrip_ids
		FROM magazines
		WHERE id = $1
	`
	mag, err := scanMagazine(p.q.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying magazine %s: %w", id, err)
	}
	return mag, nil
}

func (p *Postgres) ListMagazines(ctx context.Context) ([]journal.Magazine, error) {
	const q = `
		SELECT id, name, description, roadtrip_ids
		FROM magazines
		ORDER BY seq
	`
	rows, err := p.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying magazines: %w", err)
	}
	defer rows.Close()

	out := []journal.Magazine{}
	for rows.Next() {
		mag, err := scanMagazine(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning magazine row: %w", err)
		}
		out = append(out, *mag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating magazine rows: %w", err)
	}
	return out, nil
}

func marshalRoadtripIDs(mag *journal.Magazine) ([]byte, error) {
	ids := mag.RoadtripIDs
	if ids == nil {
		ids = []string{}
	}
	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("marshaling roadtrip ids for magazine %s: %w", mag.ID, err)
	}
	return idsJSON, nil
}

func scanMagazine(row pgx.Row) (*journal.Magazine, error) {
	var mag journal.Magazine
	var idsJSON []byte

	if err := row.Scan(&mag.ID, &mag.Name, &mag.Description, &idsJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(idsJSON, &mag.RoadtripIDs); err != nil {
		return nil, fmt.Errorf("unmarshaling roadtrip ids for magazine %s: %w", mag.ID, err)
	}
	return &mag, nil
}

// ---- favorites ----

func (p *Postgres) AddFavorite(ctx context.Context, username, roadtripID string) error {
	const q = `
		INSERT INTO favorites (username, roadtrip_id)
		VALUES ($1, $2)
		ON CONFLICT (username, roadtrip_id) DO NOTHING
	`
	if _, err := p.q.Exec(ctx, q, username, roadtripID); err != nil {
		return fmt.Errorf("inserting favorite for %s: %w", username, err)
	}
	return nil
}

func (p *Postgres) RemoveFavorite(ctx context.Context, username, roadtripID string) error {
	const q = `DELETE FROM favorites WHERE username = $1 AND roadtrip_id = $2`
	if _, err := p.q.Exec(ctx, q, username, roadtripID); err != nil {
		return fmt.Errorf("deleting favorite for %s: %w", username, err)
	}
	return nil
}

func (p *Postgres) ListFavorites(ctx context.Context, username string) ([]string, error) {
	const q = `
		SELECT roadtrip_id
		FROM favorites
		WHERE username = $1
		ORDER BY seq
	`
	rows, err := p.q.Query(ctx, q, username)
	if err != nil {
		return nil, fmt.Errorf("querying favorites for %s: %w", username, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning favorite row: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating favorite rows: %w", err)
	}
	return out, nil
}
