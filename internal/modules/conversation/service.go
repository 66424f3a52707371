// README: Conversation service: orchestrates extract → merge → validate → evaluate → persist per turn.
package conversation

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"farelink/internal/ai"
	"farelink/internal/booking"
	"farelink/internal/modules/tripspec"
	"farelink/internal/types"
)

// SpecStore is the persistence surface the service needs for specifications.
type SpecStore interface {
	GetByConversation(ctx context.Context, conversationID types.ID) (*tripspec.TripSpecification, error)
	Create(ctx context.Context, spec *tripspec.TripSpecification) error
	Update(ctx context.Context, spec *tripspec.TripSpecification) error
	ReplaceLegs(ctx context.Context, specID types.ID, legs []tripspec.FlightLeg) error
	DeleteByConversation(ctx context.Context, conversationID types.ID) error
}

// ConversationStore is the persistence surface for conversations themselves.
type ConversationStore interface {
	Create(ctx context.Context, c *Conversation) error
	Get(ctx context.Context, id types.ID) (*Conversation, error)
	UpdateStep(ctx context.Context, id types.ID, step Step, status Status, now time.Time) error
	AppendMessage(ctx context.Context, m *Message) error
	RecentUserMessages(ctx context.Context, id types.ID, limit int) ([]string, error)
}

// TurnLocker serializes turns per conversation (read-modify-write guard).
type TurnLocker interface {
	Acquire(ctx context.Context, conversationID types.ID) (release func(), err error)
}

// CreditGuard meters LLM extraction calls per user.
type CreditGuard interface {
	UseCredit(ctx context.Context, uid string) error
}

// AirportResolver fills display names for bare airport codes. Best effort.
type AirportResolver interface {
	AirportName(ctx context.Context, code string) (string, error)
}

type Service struct {
	convs     ConversationStore
	specs     SpecStore
	extractor ai.Extractor
	locker    TurnLocker
	credits   CreditGuard
	resolver  AirportResolver
	codec     *booking.Codec
	validator *tripspec.Validator
	policy    tripspec.KindPolicy
	nowFn     func() time.Time
}

type ServiceDeps struct {
	Conversations ConversationStore
	Specs         SpecStore
	Extractor     ai.Extractor
	Locker        TurnLocker
	Credits       CreditGuard
	Resolver      AirportResolver
	Codec         *booking.Codec
	Validator     *tripspec.Validator
	Policy        tripspec.KindPolicy
	Now           func() time.Time
}

func NewService(deps ServiceDeps) *Service {
	s := &Service{
		convs:     deps.Conversations,
		specs:     deps.Specs,
		extractor: deps.Extractor,
		locker:    deps.Locker,
		credits:   deps.Credits,
		resolver:  deps.Resolver,
		codec:     deps.Codec,
		validator: deps.Validator,
		policy:    deps.Policy,
		nowFn:     deps.Now,
	}
	if s.policy == nil {
		s.policy = tripspec.PolicyInferFromReturnDate
	}
	if s.nowFn == nil {
		s.nowFn = time.Now
	}
	if s.validator == nil {
		s.validator = &tripspec.Validator{}
	}
	return s
}

// TurnResult is everything one turn hands back to the caller.
type TurnResult struct {
	Reply                string
	Step                 Step
	Status               Status
	IsComplete           bool
	MissingFields        []string
	CompletionPercentage int
	// ConnectivityWarning is set when a multi-city itinerary does not chain
	// leg to leg. Advisory only; it never blocks booking.
	ConnectivityWarning string
	BookingURL           string
	ShareableURL         string
	DeepLinkURL          string
}

// Create opens a conversation with an empty specification.
func (s *Service) Create(ctx context.Context, userID string) (*Conversation, error) {
	if userID == "" {
		return nil, ErrBadRequest
	}
	now := s.nowFn()
	conv := &Conversation{
		ID:        types.ID(uuid.NewString()),
		UserID:    userID,
		Status:    StatusActive,
		Step:      StepInitial,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.convs.Create(ctx, conv); err != nil {
		return nil, err
	}
	spec := tripspec.NewSpecification(conv.ID, now)
	spec.ID = types.ID(uuid.NewString())
	if err := s.specs.Create(ctx, spec); err != nil {
		return nil, err
	}
	return conv, nil
}

// HandleTurn runs one user message through the full cycle. A validation
// failure rejects the turn and keeps the prior valid specification.
func (s *Service) HandleTurn(ctx context.Context, conversationID types.ID, message string) (*TurnResult, error) {
	if message == "" {
		return nil, ErrBadRequest
	}
	conv, err := s.convs.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.Status == StatusCompleted {
		return nil, ErrCompleted
	}

	release, err := s.locker.Acquire(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.credits.UseCredit(ctx, conv.UserID); err != nil {
		return nil, err
	}

	now := s.nowFn()
	history, err := s.convs.RecentUserMessages(ctx, conversationID, 5)
	if err != nil {
		log.Printf("conversation %s: load history: %v", conversationID, err)
	}
	extraction, err := s.extractor.ExtractTripSpec(ctx, message, ai.ExtractionContext{
		RecentUserTurns: history,
		CurrentDate:     now.Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}
	_ = s.convs.AppendMessage(ctx, &Message{
		ConversationID: conversationID, Role: "user", Content: message, CreatedAt: now,
	})

	current, err := s.specs.GetByConversation(ctx, conversationID)
	if err != nil && !errors.Is(err, tripspec.ErrNotFound) {
		return nil, err
	}

	partial := extraction.Partial()
	merged := tripspec.Merge(partial, current, s.policy, now)
	isNew := current == nil
	if isNew {
		merged.ID = types.ID(uuid.NewString())
		merged.ConversationID = conversationID
	}

	// Validation failures reject this turn; the stored spec stays untouched.
	if err := tripspec.ClampPassengers(merged); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateSpec(merged); err != nil {
		return nil, err
	}
	var connectivityWarning string
	if merged.TripKind == tripspec.KindMultiCity && len(merged.Legs) > 0 {
		if err := tripspec.ValidateSequence(merged.Legs); err != nil {
			return nil, err
		}
		if err := tripspec.ValidateChronology(merged.Legs); err != nil {
			return nil, err
		}
		if err := tripspec.ValidateConnectivity(merged.Legs); err != nil {
			connectivityWarning = err.Error()
		}
	}

	s.enrichNames(ctx, merged)

	eval := tripspec.Evaluate(merged)
	merged.IsComplete = eval.Complete

	if isNew {
		if err := s.specs.Create(ctx, merged); err != nil {
			return nil, err
		}
	} else {
		if err := s.specs.Update(ctx, merged); err != nil {
			return nil, err
		}
	}
	legsDropped := current != nil && len(current.Legs) > 0 && len(merged.Legs) == 0
	if len(partial.Legs) > 0 || legsDropped {
		if err := s.specs.ReplaceLegs(ctx, merged.ID, merged.Legs); err != nil {
			return nil, err
		}
	}

	step := NextStep(conv.Step, eval.Complete, extraction.SuggestedStep)
	status := StatusActive
	if step == StepComplete {
		status = StatusCompleted
	}
	if err := s.convs.UpdateStep(ctx, conversationID, step, status, now); err != nil {
		return nil, err
	}

	result := &TurnResult{
		Reply:                extraction.Reply,
		Step:                 step,
		Status:               status,
		IsComplete:           eval.Complete,
		MissingFields:        eval.Missing,
		CompletionPercentage: eval.Percentage,
		ConnectivityWarning:  connectivityWarning,
	}
	if eval.Complete {
		bookingURL, err := s.codec.BookingURL(merged)
		if err != nil {
			return nil, err
		}
		result.BookingURL = bookingURL
		result.ShareableURL = s.codec.ShareableURL(merged)
		result.DeepLinkURL = s.codec.DeepLinkURL(merged)
	}
	_ = s.convs.AppendMessage(ctx, &Message{
		ConversationID: conversationID, Role: "assistant", Content: extraction.Reply, CreatedAt: now,
	})
	return result, nil
}

// Spec returns the stored specification with completeness recomputed from
// its fields. The persisted flag is never trusted.
func (s *Service) Spec(ctx context.Context, conversationID types.ID) (*tripspec.TripSpecification, tripspec.Evaluation, error) {
	spec, err := s.specs.GetByConversation(ctx, conversationID)
	if err != nil {
		return nil, tripspec.Evaluation{}, err
	}
	eval := tripspec.Evaluate(spec)
	spec.IsComplete = eval.Complete
	return spec, eval, nil
}

// Link encodes the stored specification in the requested format.
func (s *Service) Link(ctx context.Context, conversationID types.ID, format booking.Format) (string, error) {
	spec, err := s.specs.GetByConversation(ctx, conversationID)
	if err != nil {
		return "", err
	}
	return s.codec.Encode(format, spec)
}

// Reset discards the specification and starts a fresh one under the same
// conversation. This is the only way out of the complete step.
func (s *Service) Reset(ctx context.Context, conversationID types.ID) (*Conversation, error) {
	conv, err := s.convs.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if err := s.specs.DeleteByConversation(ctx, conversationID); err != nil {
		return nil, err
	}
	now := s.nowFn()
	spec := tripspec.NewSpecification(conversationID, now)
	spec.ID = types.ID(uuid.NewString())
	if err := s.specs.Create(ctx, spec); err != nil {
		return nil, err
	}
	if err := s.convs.UpdateStep(ctx, conversationID, StepInitial, StatusActive, now); err != nil {
		return nil, err
	}
	conv.Step = StepInitial
	conv.Status = StatusActive
	conv.UpdatedAt = now
	return conv, nil
}

func (s *Service) enrichNames(ctx context.Context, spec *tripspec.TripSpecification) {
	if s.resolver == nil {
		return
	}
	resolve := func(code *string, name **string) {
		if code == nil || *code == "" || *name != nil {
			return
		}
		resolved, err := s.resolver.AirportName(ctx, *code)
		if err != nil {
			log.Printf("airport name lookup %s: %v", *code, err)
			return
		}
		*name = &resolved
	}
	resolve(spec.OriginCode, &spec.OriginName)
	resolve(spec.DestCode, &spec.DestName)
}
