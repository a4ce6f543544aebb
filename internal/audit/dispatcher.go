package audit

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Actions recorded by the scheduling engine.
const (
	ActionAppointmentCreated     = "appointment_created"
	ActionAppointmentConfirmed   = "appointment_confirmed"
	ActionAppointmentCancelled   = "appointment_cancelled"
	ActionAppointmentCompleted   = "appointment_completed"
	ActionAppointmentRescheduled = "appointment_rescheduled"
	ActionAppointmentConflict    = "appointment_conflict"

	// ActionCrossTenantDenied marks a request that referenced another
	// tenant's entity. Logged here in full; the HTTP response never says
	// more than "not found".
	ActionCrossTenantDenied = "security_cross_tenant_denied"
)

type Event struct {
	BarbershopID uuid.UUID
	ActorID      *uuid.UUID
	Action       string
	Entity       string
	EntityID     *uuid.UUID
	Metadata     any
}

type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.BarbershopID,
			ev.ActorID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Error("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// full queue never blocks the API; the event is dropped
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Security records a tenant-isolation violation: a structured warn log plus a
// durable audit row.
func (d *Dispatcher) Security(ev Event) {
	fields := []zap.Field{
		zap.String("action", ev.Action),
		zap.String("entity", ev.Entity),
		zap.String("barbershop_id", ev.BarbershopID.String()),
	}
	if ev.ActorID != nil {
		fields = append(fields, zap.String("actor_id", ev.ActorID.String()))
	}
	if ev.EntityID != nil {
		fields = append(fields, zap.String("entity_id", ev.EntityID.String()))
	}
	d.log.Warn("cross-tenant reference denied", fields...)

	d.Dispatch(ev)
}
