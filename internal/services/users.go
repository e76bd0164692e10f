package services

import (
	"context"
	"time"

	"github.com/LerianStudio/docker-api/pkg"
	"github.com/LerianStudio/docker-api/pkg/log"
	"github.com/LerianStudio/docker-api/pkg/mmodel"
	libOpentelemetry "github.com/LerianStudio/docker-api/pkg/opentelemetry"
	"go.opentelemetry.io/otel/attribute"
)

// FabricatedUserID is the id given to every created user.
const FabricatedUserID = 4

// fixedUsers is the immutable user catalogue. Arrays copy on assignment, so
// callers never share its backing storage.
var fixedUsers = [...]mmodel.User{
	{ID: 1, Name: "Alice", Email: "alice@example.com"},
	{ID: 2, Name: "Bob", Email: "bob@example.com"},
	{ID: 3, Name: "Charlie", Email: "charlie@example.com"},
}

// UseCase serves the user endpoints. It holds no mutable state.
type UseCase struct {
	now func() time.Time
}

// NewUseCase creates a UseCase reading the wall clock.
func NewUseCase() *UseCase {
	return &UseCase{now: time.Now}
}

// WithClock returns a copy of uc that reads time from now.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	return &UseCase{now: now}
}

// ListUsers returns a fresh copy of the fixed user list.
func (uc *UseCase) ListUsers(ctx context.Context) []mmodel.User {
	_, tracer, _ := pkg.NewTrackingFromContext(ctx)

	_, span := tracer.Start(ctx, "service.list_users")
	defer span.End()

	users := fixedUsers

	span.SetAttributes(attribute.Int("app.users.count", len(users)))

	return users[:]
}

// CreateUser echoes name and email back as user FabricatedUserID stamped
// with the current time. Nothing is stored: ListUsers is unaffected.
func (uc *UseCase) CreateUser(ctx context.Context, input *mmodel.CreateUserInput) *mmodel.CreatedUser {
	logger, tracer, _ := pkg.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.create_user")
	defer span.End()

	if input == nil {
		input = &mmodel.CreateUserInput{}
	}

	created := &mmodel.CreatedUser{
		ID:      FabricatedUserID,
		Name:    input.Name,
		Email:   input.Email,
		Created: pkg.FormatISO8601(uc.now()),
	}

	libOpentelemetry.HandleSpanEvent(span, "user.fabricated",
		attribute.Int("app.user.id", created.ID),
		attribute.Bool("app.user.has_name", len(created.Name) > 0),
		attribute.Bool("app.user.has_email", len(created.Email) > 0),
	)

	logger.Log(ctx, log.LevelDebug, "user record fabricated", log.Int("id", created.ID))

	return created
}
