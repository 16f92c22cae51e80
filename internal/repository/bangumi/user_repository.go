package bangumi

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/PizzaHomicide/sedai/internal/domain"
	"github.com/PizzaHomicide/sedai/internal/log"
	"github.com/goccy/go-json"
)

type UserRepository struct {
	client *Client
}

func NewUserRepository(client *Client) domain.ProfileRepository {
	return &UserRepository{
		client: client,
	}
}

// GetUser fetches a user profile.  Any non-2xx answer is reported as domain.ErrProfileNotFound.  Concurrent requests
// for the same user share one round trip.
func (r *UserRepository) GetUser(ctx context.Context, userID string) (*domain.UserProfile, error) {
	v, err, shared := r.client.flights.Do("user:"+userID, func() (interface{}, error) {
		return r.fetchUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debug("Shared in-flight profile request", "user_id", userID)
	}

	// Callers each get their own copy of a shared result
	profile := *v.(*domain.UserProfile)
	return &profile, nil
}

func (r *UserRepository) fetchUser(ctx context.Context, userID string) (*domain.UserProfile, error) {
	body, err := r.client.get(ctx, "/v0/users/"+url.PathEscape(userID), nil)
	if err != nil {
		var statusErr *StatusError
		switch {
		case errors.As(err, &statusErr):
			log.Info("Profile lookup failed", "user_id", userID, "status", statusErr.StatusCode)
			return nil, domain.ErrProfileNotFound
		case isBreakerRejection(err):
			return nil, fmt.Errorf("bangumi is currently unavailable: %w", err)
		default:
			return nil, fmt.Errorf("failed to fetch user profile: %w", err)
		}
	}

	var user apiUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user profile: %w", err)
	}

	log.Info("Fetched user profile", "user_id", userID, "id", user.ID, "username", user.Username)
	return user.toDomain(), nil
}
