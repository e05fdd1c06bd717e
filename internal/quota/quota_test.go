package quota

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pdfdesk/internal/model"
	"pdfdesk/internal/repository/mocks"
)

type fakeSession struct {
	id      string
	values  map[string]interface{}
	saves   int
	saveErr error
}

func newFakeSession(id string) *fakeSession {
	return &fakeSession{id: id, values: map[string]interface{}{}}
}

func (f *fakeSession) ID() string                      { return f.id }
func (f *fakeSession) Get(key string) interface{}      { return f.values[key] }
func (f *fakeSession) Set(key string, val interface{}) { f.values[key] = val }
func (f *fakeSession) Save() error {
	f.saves++
	return f.saveErr
}

type resolverFunc func(ctx context.Context, key string) (bool, error)

func (f resolverFunc) IsPremium(ctx context.Context, key string) (bool, error) { return f(ctx, key) }

func TestLimiter_FreeQuota(t *testing.T) {
	l := NewLimiter(1, nil, zerolog.Nop())
	s := newFakeSession("s1")
	ctx := context.Background()

	first, err := l.Admit(ctx, s)
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.False(t, first.Premium)
	assert.Equal(t, 1, first.Used)
	assert.Equal(t, 1, s.values[UploadsKey])

	second, err := l.Admit(ctx, s)
	require.NoError(t, err)
	assert.False(t, second.Allowed)
	assert.Equal(t, 1, second.Used)
	assert.Equal(t, 1, s.values[UploadsKey], "rejected attempts must not increment")
	assert.Equal(t, 1, s.saves)
}

func TestLimiter_Premium(t *testing.T) {
	l := NewLimiter(1, Static(true), zerolog.Nop())
	s := newFakeSession("s1")

	for i := 1; i <= 3; i++ {
		d, err := l.Admit(context.Background(), s)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.True(t, d.Premium)
		assert.Equal(t, i, d.Used)
	}
}

func TestLimiter_ZeroQuota(t *testing.T) {
	l := NewLimiter(0, Static(false), zerolog.Nop())
	d, err := l.Admit(context.Background(), newFakeSession("s"))
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestLimiter_ResolverErrorTreatedAsFree(t *testing.T) {
	calls := 0
	r := resolverFunc(func(ctx context.Context, key string) (bool, error) {
		calls++
		assert.Equal(t, "s1", key)
		return true, errors.New("db down")
	})
	l := NewLimiter(1, r, zerolog.Nop())
	s := newFakeSession("s1")
	s.values[UploadsKey] = 1

	d, err := l.Admit(context.Background(), s)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 1, calls)
}

func TestLimiter_SaveError(t *testing.T) {
	l := NewLimiter(1, nil, zerolog.Nop())
	s := newFakeSession("s1")
	s.saveErr = errors.New("storage unavailable")

	_, err := l.Admit(context.Background(), s)
	assert.ErrorContains(t, err, "save session")
}

func TestCount(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int
	}{
		{nil, 0},
		{2, 2},
		{int64(3), 3},
		{int32(4), 4},
		{float64(5), 5},
		{"6", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Count(tc.in))
	}
}

func TestSubscriptionResolver(t *testing.T) {
	ctx := context.Background()

	t.Run("active", func(t *testing.T) {
		repo := new(mocks.MockSubscriptionRepository)
		repo.On("FindBySession", mock.Anything, "s1").
			Return(&model.Subscription{SessionKey: "s1", Status: model.SubscriptionActive}, nil)

		ok, err := NewSubscriptionResolver(repo).IsPremium(ctx, "s1")
		assert.NoError(t, err)
		assert.True(t, ok)
		repo.AssertExpectations(t)
	})

	t.Run("canceled", func(t *testing.T) {
		repo := new(mocks.MockSubscriptionRepository)
		repo.On("FindBySession", mock.Anything, "s1").
			Return(&model.Subscription{SessionKey: "s1", Status: model.SubscriptionCanceled}, nil)

		ok, err := NewSubscriptionResolver(repo).IsPremium(ctx, "s1")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing", func(t *testing.T) {
		repo := new(mocks.MockSubscriptionRepository)
		repo.On("FindBySession", mock.Anything, "s1").Return(nil, sql.ErrNoRows)

		ok, err := NewSubscriptionResolver(repo).IsPremium(ctx, "s1")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("error", func(t *testing.T) {
		repo := new(mocks.MockSubscriptionRepository)
		repo.On("FindBySession", mock.Anything, "s1").Return(nil, errors.New("boom"))

		_, err := NewSubscriptionResolver(repo).IsPremium(ctx, "s1")
		assert.Error(t, err)
	})

	t.Run("empty key", func(t *testing.T) {
		repo := new(mocks.MockSubscriptionRepository)
		ok, err := NewSubscriptionResolver(repo).IsPremium(ctx, "")
		assert.NoError(t, err)
		assert.False(t, ok)
		repo.AssertNotCalled(t, "FindBySession", mock.Anything, mock.Anything)
	})
}
