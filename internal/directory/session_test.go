package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/user-directory/internal/domain"
)

type fetchFunc func(ctx context.Context) ([]domain.User, error)

func (f fetchFunc) FetchUsers(ctx context.Context) ([]domain.User, error) { return f(ctx) }

func manyUsers(n int) []domain.User {
	users := make([]domain.User, n)
	for i := range users {
		users[i] = domain.User{ID: i + 1, FirstName: "User", Domain: domain.DomainIT, Available: i%2 == 0}
	}
	return users
}

func TestSessionFilterChangesResetPage(t *testing.T) {
	changes := map[string]func(*Session){
		"query":        func(s *Session) { s.SetQuery("user") },
		"domain":       func(s *Session) { s.SetDomain(domain.DomainIT) },
		"gender":       func(s *Session) { s.SetGender("") },
		"availability": func(s *Session) { s.SetAvailability(AnyAvailability) },
	}

	for name, change := range changes {
		t.Run(name, func(t *testing.T) {
			s := NewSession(nil)
			s.Load(manyUsers(40))
			require.True(t, s.NextPage())
			require.True(t, s.NextPage())
			require.Equal(t, 3, s.Page())

			change(s)
			assert.Equal(t, 1, s.Page())
		})
	}
}

func TestSessionPaging(t *testing.T) {
	s := NewSession(nil)
	s.Load(manyUsers(20))

	assert.Equal(t, 2, s.PageCount())
	assert.False(t, s.HasPrev())
	assert.False(t, s.PrevPage())
	assert.Len(t, s.Visible(), 16)

	assert.True(t, s.NextPage())
	assert.Len(t, s.Visible(), 4)
	assert.False(t, s.HasNext())
	assert.False(t, s.NextPage())
	assert.Equal(t, 2, s.Page())

	s.SetQuery("nobody")
	assert.Equal(t, 0, s.PageCount())
	assert.False(t, s.HasNext())
	assert.Empty(t, s.Visible())
}

func TestSessionTeam(t *testing.T) {
	s := NewSession(nil)
	s.Load(fixtureUsers())

	added, err := s.Select(2)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Select(3)
	require.NoError(t, err)
	assert.True(t, added, "same domain, different availability")

	added, err = s.Select(2)
	require.NoError(t, err)
	assert.False(t, added, "duplicate (domain, available) pair")

	_, err = s.Select(99)
	assert.ErrorIs(t, err, ErrUnknownUser)

	team := s.CreateTeam()
	assert.Equal(t, []int{2, 3}, ids(team))
	summary, open := s.TeamSummary()
	assert.True(t, open)
	assert.Equal(t, team, summary)

	s.CloseTeam()
	_, open = s.TeamSummary()
	assert.False(t, open)
	assert.Equal(t, []int{2, 3}, ids(s.Selection()), "closing keeps the selection")

	_, err = s.Select(1)
	require.NoError(t, err)
	summary, _ = s.TeamSummary()
	assert.Equal(t, []int{2, 3}, ids(summary), "summary is a snapshot")
}

func TestSessionRefresh(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := NewSession(zap.New(core))

	require.NoError(t, s.Refresh(context.Background(), fetchFunc(func(context.Context) ([]domain.User, error) {
		return fixtureUsers(), nil
	})))
	assert.Len(t, s.Users(), 5)

	fetchErr := errors.New("HTTP error! Status: 500")
	err := s.Refresh(context.Background(), fetchFunc(func(context.Context) ([]domain.User, error) {
		return nil, fetchErr
	}))
	assert.ErrorIs(t, err, fetchErr)
	assert.Len(t, s.Users(), 5, "failed refresh keeps the loaded users")
	assert.Equal(t, 1, logs.FilterMessage("error fetching data").Len())
}
