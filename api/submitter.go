package api

import (
	"context"

	"golang.org/x/oauth2"

	dialog "github.com/jvjruiz/schedule-bot/dialog"
	gcal "github.com/jvjruiz/schedule-bot/gcal"
	otel "github.com/jvjruiz/schedule-bot/otel"
)

// InstrumentedSubmitter counts calendar submissions without the dialog engine
// knowing metrics exist.
type InstrumentedSubmitter struct {
	next      dialog.EventSubmitter
	telemetry otel.OpenTelemetry
}

func NewInstrumentedSubmitter(next dialog.EventSubmitter, telemetry otel.OpenTelemetry) *InstrumentedSubmitter {
	return &InstrumentedSubmitter{next: next, telemetry: telemetry}
}

func (s *InstrumentedSubmitter) CreateEvent(ctx context.Context, token *oauth2.Token, req gcal.EventRequest) (*gcal.EventResult, error) {
	result, err := s.next.CreateEvent(ctx, token, req)
	if s.telemetry != nil {
		s.telemetry.RecordEventOutcome(ctx, err == nil)
	}
	return result, err
}
