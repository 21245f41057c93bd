package actor

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when an Actor instance was not created
// through the NewActor constructor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the authenticated identity performing an operation: a user ID
// paired with a role. It is resolved once at the request boundary (by the
// identity provider) and passed explicitly into every core call; the core
// holds no session-scoped state.
type Actor struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	role   Role

	guard guard.ConstructorGuard
}

// NewActor creates an Actor from a validated user ID and role.
func NewActor(userID kernel.UUID, role Role) (Actor, error) {
	a := Actor{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setUserID(userID),
		a.setRole(role),
	); err != nil {
		return Actor{}, err
	}

	return a, nil
}

// Validate ensures the Actor was created through NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// UserID returns the authenticated user's identifier.
func (a Actor) UserID() kernel.UUID {
	return a.userID
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// Is reports whether the actor holds any of the given roles.
func (a Actor) Is(roles ...Role) bool {
	for _, r := range roles {
		if a.role == r {
			return true
		}
	}
	return false
}

func (a *Actor) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	a.userID = userID
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
