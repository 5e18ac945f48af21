// Package api holds the HTTP contract: the embedded OpenAPI document, the request and
// response bodies, and the echo wrapper that binds path and query parameters before
// calling a ServerInterface.
package api

import (
	"time"

	"github.com/aarondl/null/v8"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewOrder struct {
	ClientID    int64     `json:"clientId" validate:"required,gt=0"`
	ServiceIDs  []int64   `json:"serviceIds" validate:"omitempty,dive,gt=0"`
	ScheduledAt null.Time `json:"scheduledAt"`
	EndAt       null.Time `json:"endAt"`
}

// OrderUpdate is a partial update. Absent fields keep their value; an empty workers
// array clears the worker set.
type OrderUpdate struct {
	ExpectedUpdatedAt time.Time   `json:"expectedUpdatedAt" validate:"required"`
	Status            null.String `json:"status"`
	Workers           []int64     `json:"workers" validate:"omitempty,dive,gt=0"`
	ResponsibleID     null.Int64  `json:"responsibleId" validate:"omitempty,gt=0"`
	ScheduledAt       null.Time   `json:"scheduledAt"`
	EndAt             null.Time   `json:"endAt"`
	ServiceIDs        []int64     `json:"serviceIds" validate:"omitempty,dive,gt=0"`
}

type Worker struct {
	TechnicianID  int64     `json:"technicianId"`
	Name          string    `json:"name,omitempty"`
	Status        string    `json:"status"`
	IsResponsible bool      `json:"isResponsible"`
	AssignedAt    time.Time `json:"assignedAt"`
}

type Order struct {
	ID          int64      `json:"id"`
	ClientID    int64      `json:"clientId"`
	ServiceIDs  []int64    `json:"serviceIds"`
	Status      string     `json:"status"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	EndAt       *time.Time `json:"endAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	UpdatedBy   int64      `json:"updatedBy,omitempty"`
	Workers     []Worker   `json:"workers"`
}

type OrderDetails struct {
	Order
	ActiveVisits int `json:"activeVisits"`
}

type OrderSummary struct {
	ID            int64      `json:"id"`
	ClientID      int64      `json:"clientId"`
	ServiceIDs    []int64    `json:"serviceIds"`
	Status        string     `json:"status"`
	ScheduledAt   *time.Time `json:"scheduledAt,omitempty"`
	EndAt         *time.Time `json:"endAt,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	ResponsibleID *int64     `json:"responsibleId,omitempty"`
}

type OrderPage struct {
	Items []OrderSummary `json:"items"`
	Total int64          `json:"total"`
}

type Assignment struct {
	OrderID      int64     `json:"orderId"`
	TechnicianID int64     `json:"technicianId"`
	Status       string    `json:"status"`
	AssignedAt   time.Time `json:"assignedAt"`
}

type NewVisit struct {
	TechnicianID int64     `json:"technicianId" validate:"required,gt=0"`
	StartAt      time.Time `json:"startAt" validate:"required"`
	EndAt        time.Time `json:"endAt" validate:"required,gtfield=StartAt"`
}

type VisitReview struct {
	ExpectedUpdatedAt time.Time `json:"expectedUpdatedAt" validate:"required"`
	Evaluation        null.Int  `json:"evaluation" validate:"omitempty,min=1,max=5"`
}

type Visit struct {
	ID           int64     `json:"id"`
	OrderID      int64     `json:"orderId"`
	TechnicianID int64     `json:"technicianId"`
	StartAt      time.Time `json:"startAt"`
	EndAt        time.Time `json:"endAt"`
	IsReviewed   bool      `json:"isReviewed"`
	Evaluation   *int      `json:"evaluation,omitempty"`
	CreatedBy    int64     `json:"createdBy"`
	UpdatedAt    time.Time `json:"updatedAt"`
	UpdatedBy    int64     `json:"updatedBy"`
}

type NewTechnician struct {
	DNI  string `json:"dni" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type Technician struct {
	ID     int64  `json:"id"`
	DNI    string `json:"dni"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type NewAvailability struct {
	StartAt time.Time `json:"startAt" validate:"required"`
	EndAt   time.Time `json:"endAt" validate:"required,gtfield=StartAt"`
	Type    string    `json:"type" validate:"required,oneof=FULL_TIME PART_TIME ON_CALL"`
}

type Availability struct {
	ID      int64     `json:"id"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Type    string    `json:"type"`
}

type WorkloadBooking struct {
	OrderID int64      `json:"orderId"`
	Status  string     `json:"status"`
	Start   *time.Time `json:"start,omitempty"`
	End     *time.Time `json:"end,omitempty"`
}

type Workload struct {
	TechnicianID int64             `json:"technicianId"`
	Name         string            `json:"name"`
	Status       string            `json:"status"`
	Load         int               `json:"load"`
	Bookings     []WorkloadBooking `json:"bookings"`
}

type ListOrdersParams struct {
	Status       *[]string  `form:"status" json:"status,omitempty"`
	TechnicianID *int64     `form:"technicianId" json:"technicianId,omitempty"`
	ClientID     *int64     `form:"clientId" json:"clientId,omitempty"`
	From         *time.Time `form:"from" json:"from,omitempty"`
	To           *time.Time `form:"to" json:"to,omitempty"`
	Limit        *int       `form:"limit" json:"limit,omitempty"`
	Offset       *int       `form:"offset" json:"offset,omitempty"`
}

type DeleteOrderParams struct {
	ExpectedUpdatedAt time.Time `form:"expectedUpdatedAt" json:"expectedUpdatedAt"`
}
