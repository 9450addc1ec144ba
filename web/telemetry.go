package web

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Action tags recorded in telemetry events.
const (
	ActionAdd    = "add"
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionFilter = "filter"
)

// Outcome classifications.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

const (
	telemetryEventName = "tasks.action.telemetry"
	tracerName         = "taskboard/web"
	stepSubmit         = "submit"
	anonSession        = "anon"
)

// Event is one telemetry record describing a single request attempt.
type Event struct {
	Session   string `json:"session"`
	RequestID string `json:"requestId"`
	Action    string `json:"action"`
	Step      string `json:"step"`
	Outcome   string `json:"outcome"`
	ElapsedMs int64  `json:"elapsedMs"`
	Status    int    `json:"status"`
	Mode      string `json:"mode"`
}

// actionTelemetry tracks one request attempt from handler entry and
// emits exactly one Event when Done is called, just before the
// response is written.
type actionTelemetry struct {
	logger  *log.Logger
	emitter Emitter
	span    trace.Span
	start   time.Time
	event   Event
	done    bool
}

// newActionTelemetry opens the telemetry scope for one request. The
// returned context carries the request span and should replace the
// request context for downstream work.
func newActionTelemetry(ctx context.Context, logger *log.Logger, emitter Emitter, session, action string) (*actionTelemetry, context.Context) {
	spanCtx, span := otel.Tracer(tracerName).Start(ctx, "tasks."+action+"."+stepSubmit)
	at := &actionTelemetry{
		logger:  logger,
		emitter: emitter,
		span:    span,
		start:   time.Now(),
		event: Event{
			Session:   session,
			RequestID: uuid.NewString(),
			Action:    action,
			Step:      stepSubmit,
		},
	}
	return at, spanCtx
}

// Done resolves and emits the event. Elapsed time covers handler entry
// up to this call. A second call is ignored so every request produces
// exactly one event, on success and error paths alike. Safe on a nil
// receiver, which lets read handlers skip telemetry entirely.
func (t *actionTelemetry) Done(status int, outcome string, mode Mode) {
	if t == nil || t.done {
		return
	}
	t.done = true

	t.event.Status = status
	t.event.Outcome = outcome
	t.event.Mode = mode.String()
	t.event.ElapsedMs = time.Since(t.start).Milliseconds()

	t.span.SetAttributes(
		attribute.String("tasks.action", t.event.Action),
		attribute.String("tasks.step", t.event.Step),
		attribute.String("tasks.outcome", t.event.Outcome),
		attribute.String("tasks.mode", t.event.Mode),
		attribute.String("tasks.request_id", t.event.RequestID),
		attribute.Int("http.status_code", t.event.Status),
		attribute.Int64("tasks.elapsed_ms", t.event.ElapsedMs),
	)
	if outcome == OutcomeError {
		t.span.SetStatus(codes.Error, "request rejected")
	} else {
		t.span.SetStatus(codes.Ok, "")
	}
	t.span.End()

	if t.logger != nil {
		fields := log.Fields{
			"session":   t.event.Session,
			"requestId": t.event.RequestID,
			"action":    t.event.Action,
			"step":      t.event.Step,
			"outcome":   t.event.Outcome,
			"elapsedMs": t.event.ElapsedMs,
			"status":    t.event.Status,
			"mode":      t.event.Mode,
		}
		if sc := t.span.SpanContext(); sc.HasTraceID() {
			fields["trace_id"] = sc.TraceID().String()
		}
		t.logger.WithFields(fields).Info(telemetryEventName)
	}

	if t.emitter != nil {
		t.emitter.Emit(t.event)
	}
}
