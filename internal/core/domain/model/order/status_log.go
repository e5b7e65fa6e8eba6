package order

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

var (
	// ErrStatusLogIsNotConstructed is returned when a StatusLog was not created
	// through NewStatusLog or RestoreStatusLog.
	ErrStatusLogIsNotConstructed = errors.New("StatusLog must be created via NewStatusLog constructor")
)

// StatusLog is one append-only row of the order's audit trail: a single
// observed status change, including the implicit "created" transition where
// the old status is absent. Entries are never mutated or deleted.
type StatusLog struct {
	id        kernel.UUID
	orderID   kernel.UUID
	oldStatus *Status
	newStatus Status
	actorID   *kernel.UUID
	createdAt time.Time

	isConstructed bool
}

// NewStatusLog creates an audit entry for a status change.
// oldStatus is nil for the creation entry; actorID is nil for
// system-initiated changes.
func NewStatusLog(
	id kernel.UUID,
	orderID kernel.UUID,
	oldStatus *Status,
	newStatus Status,
	actorID *kernel.UUID,
	createdAt time.Time,
) (*StatusLog, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := newStatus.Validate(); err != nil {
		return nil, err
	}
	if oldStatus != nil {
		if err := oldStatus.Validate(); err != nil {
			return nil, err
		}
	}
	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return nil, err
		}
	}

	return &StatusLog{
		id:            id,
		orderID:       orderID,
		oldStatus:     oldStatus,
		newStatus:     newStatus,
		actorID:       actorID,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the StatusLog was created via NewStatusLog.
func (l *StatusLog) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrStatusLogIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (l *StatusLog) ID() kernel.UUID {
	return l.id
}

// OrderID returns the order this entry belongs to.
func (l *StatusLog) OrderID() kernel.UUID {
	return l.orderID
}

// OldStatus returns the status before the change, or nil for the creation entry.
func (l *StatusLog) OldStatus() *Status {
	return l.oldStatus
}

// NewStatus returns the status after the change.
func (l *StatusLog) NewStatus() Status {
	return l.newStatus
}

// ActorID returns the acting user, or nil for system-initiated changes.
func (l *StatusLog) ActorID() *kernel.UUID {
	return l.actorID
}

// CreatedAt returns when the change was observed.
func (l *StatusLog) CreatedAt() time.Time {
	return l.createdAt
}
