// Package quota implements the per-session usage limiter of the notes app.
package quota

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// UploadsKey is the session key holding the upload counter.
const UploadsKey = "uploads"

// UpsellMessage is shown instead of processing once the free quota is used.
const UpsellMessage = "You've used your free upload. Subscribe to unlock unlimited uploads."

// Session is the slice of a server-side session the limiter needs.
// *session.Session from fiber satisfies it.
type Session interface {
	ID() string
	Get(key string) interface{}
	Set(key string, val interface{})
	Save() error
}

// PremiumResolver decides whether a session has paid access.
type PremiumResolver interface {
	IsPremium(ctx context.Context, sessionKey string) (bool, error)
}

// Static resolves every session to the same premium flag.
type Static bool

func (s Static) IsPremium(context.Context, string) (bool, error) {
	return bool(s), nil
}

// Decision is the outcome of one upload attempt.
type Decision struct {
	Allowed bool
	Premium bool
	Used    int // counter value after the attempt
}

// Limiter gates uploads: once a session has used FreeQuota uploads, further
// attempts are rejected unless the session is premium.
type Limiter struct {
	freeQuota int
	premium   PremiumResolver
	log       zerolog.Logger
}

// NewLimiter builds a Limiter. A nil resolver means nobody is premium.
func NewLimiter(freeQuota int, premium PremiumResolver, log zerolog.Logger) *Limiter {
	if premium == nil {
		premium = Static(false)
	}
	if freeQuota < 0 {
		freeQuota = 0
	}
	return &Limiter{freeQuota: freeQuota, premium: premium, log: log}
}

// Admit checks the session's counter and, when the attempt is allowed,
// increments and saves it before returning. Rejected attempts leave the
// counter untouched. The session must not be used after Admit returns.
// The limit is soft: concurrent uploads in one session may both be admitted.
func (l *Limiter) Admit(ctx context.Context, s Session) (Decision, error) {
	id := s.ID()
	used := Count(s.Get(UploadsKey))

	premium, err := l.premium.IsPremium(ctx, id)
	if err != nil {
		l.log.Warn().Err(err).Str("component", "quota").Msg("premium lookup failed, treating session as free")
		premium = false
	}

	if used >= l.freeQuota && !premium {
		return Decision{Allowed: false, Used: used}, nil
	}

	s.Set(UploadsKey, used+1)
	if err := s.Save(); err != nil {
		return Decision{}, fmt.Errorf("save session: %w", err)
	}
	return Decision{Allowed: true, Premium: premium, Used: used + 1}, nil
}

// Count reads a counter value stored in a session, treating absent or
// unexpected values as zero.
func Count(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
