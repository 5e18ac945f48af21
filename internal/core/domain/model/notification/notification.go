// Package notification models the messages queued for technicians when their work changes.
// Notifications are written to an outbox in the same transaction as the change and
// delivered later by a background job.
package notification

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
)

type Kind string

const (
	KindOrderAssigned      Kind = "ORDER_ASSIGNED"
	KindOrderReassigned    Kind = "ORDER_REASSIGNED"
	KindOrderStatusChanged Kind = "ORDER_STATUS_CHANGED"
	KindOrderDeleted       Kind = "ORDER_DELETED"
)

func (k Kind) Validate() error {
	switch k {
	case KindOrderAssigned, KindOrderReassigned, KindOrderStatusChanged, KindOrderDeleted:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a valid notification kind", string(k)))
	}
}

type Notification struct {
	id        kernel.UUID
	userID    int64
	orderID   int64
	kind      Kind
	title     string
	message   string
	createdAt time.Time
	sentAt    *time.Time
}

func NewNotification(userID, orderID int64, kind Kind, title, message string, now time.Time) (*Notification, error) {
	return RestoreNotification(kernel.NewUUID(), userID, orderID, kind, title, message, now, nil)
}

func RestoreNotification(
	id kernel.UUID,
	userID, orderID int64,
	kind Kind,
	title, message string,
	createdAt time.Time,
	sentAt *time.Time,
) (*Notification, error) {
	var titleErr error
	if strings.TrimSpace(title) == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}
	var userErr error
	if userID <= 0 {
		userErr = errs.NewValueIsOutOfRangeError("userID", userID, 1, int64(math.MaxInt64))
	}
	if err := errors.Join(id.Validate(), userErr, kind.Validate(), titleErr); err != nil {
		return nil, err
	}

	return &Notification{
		id:        id,
		userID:    userID,
		orderID:   orderID,
		kind:      kind,
		title:     title,
		message:   message,
		createdAt: createdAt.UTC(),
		sentAt:    sentAt,
	}, nil
}

func (n *Notification) ID() kernel.UUID      { return n.id }
func (n *Notification) UserID() int64        { return n.userID }
func (n *Notification) OrderID() int64       { return n.orderID }
func (n *Notification) Kind() Kind           { return n.kind }
func (n *Notification) Title() string        { return n.title }
func (n *Notification) Message() string      { return n.message }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }
func (n *Notification) SentAt() *time.Time   { return n.sentAt }
func (n *Notification) IsSent() bool         { return n.sentAt != nil }

func (n *Notification) MarkSent(now time.Time) {
	sent := now.UTC()
	n.sentAt = &sent
}
