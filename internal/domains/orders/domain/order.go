package domain

import "strings"

// Status enumerates order progression.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// MinQuantity is the smallest quantity accepted when an order is created.
const MinQuantity = 1

// DefaultStatus is applied when an order is created without an explicit status.
const DefaultStatus = StatusPending

var (
	initialStatuses = []Status{StatusPending, StatusProcessing}
	validStatuses   = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
)

// InitialStatuses returns the statuses an order may be created with.
func InitialStatuses() []Status {
	return append([]Status(nil), initialStatuses...)
}

// ValidStatuses returns every status an order may hold.
func ValidStatuses() []Status {
	return append([]Status(nil), validStatuses...)
}

// IsValid reports whether s belongs to the valid status set.
func (s Status) IsValid() bool {
	return containsStatus(validStatuses, s)
}

// IsInitial reports whether an order may start its life in s.
func (s Status) IsInitial() bool {
	return containsStatus(initialStatuses, s)
}

func (s Status) String() string { return string(s) }

// Order is the tracked purchase record.
type Order struct {
	ID         string
	ItemName   string
	Quantity   int
	CustomerID string
	Status     Status
}

// WithStatus returns a copy of the order carrying the given status.
func (o Order) WithStatus(status Status) Order {
	o.Status = status
	return o
}

func containsStatus(set []Status, s Status) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}

func joinStatuses(statuses []Status) string {
	parts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}
