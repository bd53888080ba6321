package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/spec-kit/user-directory/internal/domain"
	"github.com/spec-kit/user-directory/internal/events"
	"github.com/spec-kit/user-directory/internal/repository"
	"github.com/spec-kit/user-directory/pkg/util/errorutil"
)

// Client-facing messages for store failures.
const (
	MsgReadFailed  = "Error reading JSON file"
	MsgWriteFailed = "Error writing JSON file"
)

const tracerName = "github.com/spec-kit/user-directory/internal/service"

// UserService performs read-modify-write cycles on the user collection.
//
// Mutations are serialized by an in-process mutex only. Several processes
// sharing one store can still lose updates or hand out the same id.
type UserService struct {
	store      repository.UserStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	tracer     trace.Tracer

	writeMu sync.Mutex
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	Store      repository.UserStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewUserService builds the service.
func NewUserService(deps UserDependencies) *UserService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
	}
}

// List returns the whole collection.
func (s *UserService) List(ctx context.Context) (domain.Collection, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.List")
	defer span.End()

	users, err := s.load(ctx, span)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("users.count", len(users)))
	return users, nil
}

// Get returns the first record whose id equals id.
func (s *UserService) Get(ctx context.Context, id int) (domain.Record, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Get", trace.WithAttributes(attribute.Int("user.id", id)))
	defer span.End()

	users, err := s.load(ctx, span)
	if err != nil {
		return nil, err
	}
	idx := users.IndexOf(id)
	if idx < 0 {
		return nil, notFound(id)
	}
	return users[idx], nil
}

// Create appends input under the next free id and returns the stored record.
// Any id carried by input is replaced.
func (s *UserService) Create(ctx context.Context, input domain.Record) (domain.Record, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Create")
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	users, err := s.load(ctx, span)
	if err != nil {
		return nil, err
	}

	created := input.Clone()
	id := users.NextID()
	created[domain.FieldID] = id
	users = append(users, created)

	if err := s.save(ctx, span, users); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("user.id", id))

	s.publishEvent(ctx, events.Event{
		Type:    events.EventUserCreated,
		UserID:  id,
		Payload: events.UserCreatedPayload{Record: created},
	})
	return created, nil
}

// Update shallow-merges patch over the record with id and returns the result.
func (s *UserService) Update(ctx context.Context, id int, patch domain.Record) (domain.Record, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Update", trace.WithAttributes(attribute.Int("user.id", id)))
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	users, err := s.load(ctx, span)
	if err != nil {
		return nil, err
	}
	idx := users.IndexOf(id)
	if idx < 0 {
		return nil, notFound(id)
	}

	updated := users[idx].Merge(patch)
	users[idx] = updated

	if err := s.save(ctx, span, users); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventUserUpdated,
		UserID:  id,
		Payload: events.UserUpdatedPayload{Fields: patchFields(patch), Record: updated},
	})
	return updated, nil
}

// Delete removes every record with id. Nothing is written when none matched.
func (s *UserService) Delete(ctx context.Context, id int) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Delete", trace.WithAttributes(attribute.Int("user.id", id)))
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	users, err := s.load(ctx, span)
	if err != nil {
		return err
	}
	remaining := users.Without(id)
	if len(remaining) == len(users) {
		return notFound(id)
	}

	if err := s.save(ctx, span, remaining); err != nil {
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventUserDeleted,
		UserID:  id,
		Payload: events.UserDeletedPayload{Remaining: len(remaining)},
	})
	return nil
}

func (s *UserService) load(ctx context.Context, span trace.Span) (domain.Collection, error) {
	users, err := s.store.Load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, MsgReadFailed)
		return nil, errorutil.NewInternalError(MsgReadFailed, err)
	}
	return users, nil
}

func (s *UserService) save(ctx context.Context, span trace.Span, users domain.Collection) error {
	if err := s.store.Save(ctx, users); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, MsgWriteFailed)
		return errorutil.NewInternalError(MsgWriteFailed, err)
	}
	return nil
}

func (s *UserService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func notFound(id int) error {
	return errorutil.NewNotFound("User", map[string]any{"id": id})
}

func patchFields(patch domain.Record) []string {
	fields := make([]string, 0, len(patch))
	for k := range patch {
		if k == domain.FieldID {
			continue
		}
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}
