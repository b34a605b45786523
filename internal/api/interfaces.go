package api

import (
	"context"

	"github.com/roadbook/roadbook/internal/journal"
)

// Store defines the collection operations needed by handlers. Both the
// memory store and the Postgres store satisfy it.
type Store interface {
	CreateAccount(ctx context.Context, a *journal.Account) error
	GetAccountByUsername(ctx context.Context, username string) (*journal.Account, error)
	ListAccounts(ctx context.Context) ([]journal.Account, error)

	AddLandmark(ctx context.Context, l *journal.Landmark) error
	RemoveLandmark(ctx context.Context, id string) error
	GetLandmark(ctx context.Context, id string) (*journal.Landmark, error)
	GetLandmarkByReviewID(ctx context.Context, reviewID string) (*journal.Landmark, error)
	ListLandmarks(ctx context.Context) ([]journal.Landmark, error)
	AddReview(ctx context.Context, landmarkID string, r *journal.Review) error
	UpdateReview(ctx context.Context, r *journal.Review) error
	RemoveReview(ctx context.Context, reviewID string) error

	AddRoadtrip(ctx context.Context, rt *journal.Roadtrip) error
	UpdateRoadtrip(ctx context.Context, rt *journal.Roadtrip) error
	RemoveRoadtrip(ctx context.Context, id string) error
	GetRoadtrip(ctx context.Context, id string) (*journal.Roadtrip, error)
	ListRoadtrips(ctx context.Context) ([]journal.Roadtrip, error)
	ListRoadtripsByAuthor(ctx context.Context, username string) ([]journal.Roadtrip, error)
	SearchRoadtrips(ctx context.Context, keyword string) ([]journal.Roadtrip, error)

	AddMagazine(ctx context.Context, mag *journal.Magazine) error
	UpdateMagazine(ctx context.Context, mag *journal.Magazine) error
	RemoveMagazine(ctx context.Context, id string) error
	GetMagazine(ctx context.Context, id string) (*journal.Magazine, error)
	ListMagazines(ctx context.Context) ([]journal.Magazine, error)

	AddFavorite(ctx context.Context, username, roadtripID string) error
	RemoveFavorite(ctx context.Context, username, roadtripID string) error
	ListFavorites(ctx context.Context, username string) ([]string, error)
}

// RoadtripCache defines the read-cache operations needed by handlers.
type RoadtripCache interface {
	Get(ctx context.Context, id string) (*journal.Roadtrip, error)
	Set(ctx context.Context, rt *journal.Roadtrip) error
	Delete(ctx context.Context, id string) error
}

// TokenIssuer defines the token operations needed by auth handlers and the
// principal middleware.
type TokenIssuer interface {
	Issue(username string) (string, error)
	Subject(token string) (string, error)
}
