package directory

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/user-directory/internal/domain"
)

// ErrUnknownUser is returned by Select when no loaded user has the id.
var ErrUnknownUser = errors.New("user not loaded")

// Fetcher loads the full user collection.
type Fetcher interface {
	FetchUsers(ctx context.Context) ([]domain.User, error)
}

// Session is the client-side view state: the loaded collection, the
// active filters, the current page and the team being assembled.
type Session struct {
	logger *zap.Logger

	users   []domain.User
	filters Filters
	page    int

	team        domain.Team
	summary     []domain.User
	summaryOpen bool
}

// NewSession starts an empty session on page 1.
func NewSession(logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{logger: logger, page: 1}
}

// Load replaces the collection and returns to page 1.
func (s *Session) Load(users []domain.User) {
	s.users = append([]domain.User(nil), users...)
	s.page = 1
}

// Refresh loads the collection from f. On failure the error is logged and
// the current state is kept.
func (s *Session) Refresh(ctx context.Context, f Fetcher) error {
	users, err := f.FetchUsers(ctx)
	if err != nil {
		s.logger.Error("error fetching data", zap.Error(err))
		return err
	}
	s.Load(users)
	s.logger.Info("fetched users", zap.Int("count", len(users)))
	return nil
}

func (s *Session) Users() []domain.User { return s.users }

func (s *Session) Filters() Filters { return s.filters }

func (s *Session) Page() int { return s.page }

// SetQuery changes the name search and returns to page 1.
func (s *Session) SetQuery(q string) {
	s.filters.Query = q
	s.page = 1
}

// SetDomain changes the domain filter ("" clears it) and returns to page 1.
func (s *Session) SetDomain(d domain.Domain) {
	s.filters.Domain = d
	s.page = 1
}

// SetGender changes the gender filter ("" clears it) and returns to page 1.
func (s *Session) SetGender(g domain.Gender) {
	s.filters.Gender = g
	s.page = 1
}

// SetAvailability changes the availability filter and returns to page 1.
func (s *Session) SetAvailability(a Availability) {
	s.filters.Availability = a
	s.page = 1
}

// Filtered is the collection after every active filter.
func (s *Session) Filtered() []domain.User {
	return Filter(s.users, s.filters)
}

// PageCount is the number of pages of the filtered collection.
func (s *Session) PageCount() int {
	return PageCount(len(s.Filtered()), PageSize)
}

// Visible is the current page of the filtered collection.
func (s *Session) Visible() []domain.User {
	return Page(s.Filtered(), s.page, PageSize)
}

func (s *Session) HasPrev() bool { return s.page > 1 }

func (s *Session) HasNext() bool { return s.page < s.PageCount() }

// NextPage advances one page unless already on the last one.
func (s *Session) NextPage() bool {
	if !s.HasNext() {
		return false
	}
	s.page++
	return true
}

// PrevPage goes back one page unless already on the first one.
func (s *Session) PrevPage() bool {
	if !s.HasPrev() {
		return false
	}
	s.page--
	return true
}

// Select adds the loaded user with id to the team. It reports false when a
// member already shares the user's domain and availability.
func (s *Session) Select(id int) (bool, error) {
	for _, u := range s.users {
		if u.ID == id {
			return s.team.Add(u), nil
		}
	}
	return false, ErrUnknownUser
}

// Selection is the current team selection.
func (s *Session) Selection() []domain.User {
	return s.team.Snapshot()
}

// CreateTeam snapshots the selection into the summary and opens it.
func (s *Session) CreateTeam() []domain.User {
	s.summary = s.team.Snapshot()
	s.summaryOpen = true
	return s.summary
}

// CloseTeam hides the summary. The selection is kept.
func (s *Session) CloseTeam() {
	s.summaryOpen = false
}

// TeamSummary returns the last snapshot and whether it is shown.
func (s *Session) TeamSummary() ([]domain.User, bool) {
	return s.summary, s.summaryOpen
}
