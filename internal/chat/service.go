package chat

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"homeloans_backend/internal/leads/repository"
	"homeloans_backend/internal/qualification"
	"homeloans_backend/platform/apperr"
	"homeloans_backend/platform/logger"
	"homeloans_backend/platform/sanitize"
)

const (
	roleAssistant   = "assistant"
	maxMessageRunes = 500
	maxSessionRunes = 128
)

// RateSource supplies the posted fixed rate used for estimates.
type RateSource interface {
	FixedRate(ctx context.Context) float64
}

// LeadRecorder stores completed qualifications.
type LeadRecorder interface {
	Record(ctx context.Context, sessionID string, record qualification.LeadRecord, result qualification.Result) (repository.Lead, error)
}

// Sender is the free-form chat fallback.
type Sender interface {
	Send(ctx context.Context, history []HistoryEntry, message string) (string, error)
}

// Copy is the fixed text the turn service answers with.
type Copy struct {
	BookingReply     string
	RelayUnavailable string
	RelayFailed      string
	LLMNotConfigured string
}

// Service answers one chat turn.
type Service struct {
	router *Router
	flow   *qualification.Flow
	relay  Sender
	rates  RateSource
	leads  LeadRecorder
	text   Copy
	log    *logger.Logger
}

// NewService wires the turn service. A nil relay means no model is configured.
func NewService(router *Router, flow *qualification.Flow, relay Sender, rates RateSource, leads LeadRecorder, text Copy, log *logger.Logger) *Service {
	return &Service{
		router: router,
		flow:   flow,
		relay:  relay,
		rates:  rates,
		leads:  leads,
		text:   text,
		log:    log,
	}
}

// Turn routes the message and produces the reply.
func (s *Service) Turn(ctx context.Context, req TurnRequest) (TurnResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return TurnResponse{}, apperr.Validation("Invalid input")
	}
	if utf8.RuneCountInString(message) > maxMessageRunes {
		return TurnResponse{}, apperr.Validation("Message too long")
	}

	var state qualification.State
	if req.QualificationState != nil {
		state = *req.QualificationState
	}
	if err := state.Validate(); err != nil {
		return TurnResponse{}, apperr.Validation("Invalid qualification state").WithDetails(err.Error())
	}
	var record qualification.LeadRecord
	if req.LeadData != nil {
		record = *req.LeadData
	}

	intent := s.router.Route(message, state)
	log := s.log.WithContext(ctx)

	switch intent {
	case IntentBooking:
		log.ChatTurn(intent.String(), state.CurrentQuestion, false)
		return TurnResponse{Role: roleAssistant, Content: s.text.BookingReply}, nil

	case IntentRestart, IntentStartQualification:
		step := s.flow.Start()
		log.ChatTurn(intent.String(), step.State.CurrentQuestion, false)
		return stepResponse(step.Reply, step), nil

	case IntentContinue:
		step := s.flow.Advance(state, record, message)
		log.ChatTurn(intent.String()+":"+step.Outcome.String(), step.State.CurrentQuestion, step.State.Completed)
		if step.Outcome == qualification.OutcomeCompleted {
			return s.complete(ctx, sanitize.Identifier(req.SessionID, maxSessionRunes), step), nil
		}
		return stepResponse(step.Reply, step), nil
	}

	log.ChatTurn(intent.String(), state.CurrentQuestion, false)
	return s.relayTurn(ctx, req.History, message)
}

func (s *Service) complete(ctx context.Context, sessionID string, step qualification.Step) TurnResponse {
	result := s.flow.Finalize(step.Record, s.rates.FixedRate(ctx))

	// A lost lead does not fail the turn.
	if _, err := s.leads.Record(ctx, sessionID, step.Record, result); err != nil {
		s.log.WithContext(ctx).Warn("lead not stored", "session_id", sessionID, "error", err)
	}

	resp := stepResponse(result.Message, step)
	resp.LeadScore = string(result.Tier)
	return resp
}

func (s *Service) relayTurn(ctx context.Context, history []HistoryEntry, message string) (TurnResponse, error) {
	if s.relay == nil {
		return TurnResponse{}, apperr.Internal(s.text.LLMNotConfigured)
	}
	reply, err := s.relay.Send(ctx, history, message)
	if err != nil {
		s.log.WithContext(ctx).UpstreamError("chat relay", err)
		if errors.Is(err, ErrEmptyReply) {
			return TurnResponse{}, apperr.Unavailable(s.text.RelayFailed, err)
		}
		return TurnResponse{}, apperr.Unavailable(s.text.RelayUnavailable, err)
	}
	return TurnResponse{Role: roleAssistant, Content: reply}, nil
}

func stepResponse(content string, step qualification.Step) TurnResponse {
	state, record := step.State, step.Record
	return TurnResponse{
		Role:               roleAssistant,
		Content:            content,
		QualificationState: &state,
		LeadData:           &record,
	}
}
