package quota

import (
	"context"
	"database/sql"
	"errors"

	"pdfdesk/internal/repository"
)

// SubscriptionResolver marks a session premium when it has an active
// subscription record.
type SubscriptionResolver struct {
	repo repository.SubscriptionRepository
}

func NewSubscriptionResolver(repo repository.SubscriptionRepository) *SubscriptionResolver {
	return &SubscriptionResolver{repo: repo}
}

func (r *SubscriptionResolver) IsPremium(ctx context.Context, sessionKey string) (bool, error) {
	if sessionKey == "" {
		return false, nil
	}
	sub, err := r.repo.FindBySession(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return sub.Active(), nil
}
