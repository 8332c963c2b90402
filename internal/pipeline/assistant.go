// Package pipeline sequences the full decision path for one message:
// classify, retrieve, score, gate, compose. It owns the per-user stage
// history and is the single place that converts internal faults into a
// safe fallback envelope.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/wayfinder-support/wayfinder/internal/cache"
	"github.com/wayfinder-support/wayfinder/internal/catalog"
	"github.com/wayfinder-support/wayfinder/internal/classify"
	"github.com/wayfinder-support/wayfinder/internal/compose"
	"github.com/wayfinder-support/wayfinder/internal/gate"
	"github.com/wayfinder-support/wayfinder/internal/llm"
	"github.com/wayfinder-support/wayfinder/internal/model"
	"github.com/wayfinder-support/wayfinder/internal/trust"
)

// UserContext carries optional caller-supplied user information
type UserContext struct {
	UserID   string
	Location string
}

// Feedback is a user's rating of a previous response
type Feedback struct {
	ResponseID string
	UserID     string
	Rating     int
	Helpful    bool
	Comment    string
}

// FeedbackSink receives feedback fire-and-forget; failures never affect
// the response path
type FeedbackSink interface {
	Record(ctx context.Context, fb Feedback) error
}

// Assistant is the conversation orchestrator
type Assistant struct {
	cfg        *model.Config
	classifier *classify.Classifier
	store      *catalog.Store
	scorer     *trust.Scorer
	gate       *gate.Gate
	composer   *compose.Composer
	polisher   *llm.Polisher
	history    *History
	feedback   FeedbackSink
	now        func() time.Time
}

// Option customises an Assistant, mainly for tests
type Option func(*Assistant)

// WithStore replaces the catalogue
func WithStore(store *catalog.Store) Option {
	return func(a *Assistant) { a.store = store }
}

// WithFeedbackSink attaches a feedback sink
func WithFeedbackSink(sink FeedbackSink) Option {
	return func(a *Assistant) { a.feedback = sink }
}

// WithProber replaces the trust scorer's reachability prober
func WithProber(prober trust.Prober) Option {
	return func(a *Assistant) { a.scorer = trust.NewScorer(a.cfg.Trust, prober) }
}

// New creates an assistant from configuration. Collaborator setup failures
// (catalogue file, LLM provider) degrade with a warning rather than
// failing: the deterministic pipeline always works.
func New(cfg *model.Config, opts ...Option) *Assistant {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	store := catalog.Default()
	if cfg.Catalog.Path != "" {
		loaded, err := catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load catalogue %s, using embedded seed: %v\n", cfg.Catalog.Path, err)
		} else {
			store = loaded
		}
	}

	var prober trust.Prober
	if cfg.Probe.Enabled {
		prober = trust.NewHTTPProber(cfg, cache.NewMemory(cfg.Probe.CacheTTL, 10*time.Minute))
	}

	var polisher *llm.Polisher
	if cfg.LLM.Provider != "" {
		p, err := llm.NewPolisher(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			polisher = p
		}
	}

	classifier := classify.New(classify.DefaultSignals(), cfg.Classifier)

	a := &Assistant{
		cfg:        cfg,
		classifier: classifier,
		store:      store,
		scorer:     trust.NewScorer(cfg.Trust, prober),
		gate:       gate.New(cfg.Gate, classifier.HasEmergencyTerms),
		composer:   compose.New(cfg.Compose),
		polisher:   polisher,
		history:    NewHistory(cfg.History.MaxStages),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Classifier exposes the classifier for explain-style tooling
func (a *Assistant) Classifier() *classify.Classifier {
	return a.classifier
}

// Store exposes the loaded catalogue
func (a *Assistant) Store() *catalog.Store {
	return a.store
}

// GenerateResponse runs the full pipeline for one message. It never
// returns an error: any unexpected internal fault degrades to a clearly
// labeled fallback envelope.
func (a *Assistant) GenerateResponse(ctx context.Context, message string, userCtx UserContext, sessionID string) (envelope model.ResponseEnvelope) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Error: pipeline fault recovered: %v\n", r)
			envelope = a.fallbackEnvelope()
		}
	}()

	userID := userCtx.UserID
	if userID == "" {
		userID = sessionID
	}
	if userID == "" {
		userID = "anonymous"
	}

	prior := a.history.Stages(userID)
	jc := a.classifier.Classify(message, prior, &classify.Profile{Location: userCtx.Location})

	resources := a.store.Resources(catalog.ResourceQuery{
		Stage:    jc.Stage,
		Location: jc.Location,
		Urgency:  jc.Urgency,
	})
	knowledge := a.store.Knowledge(message, jc.Stage, jc.Location)

	scores := make([]float64, 0, len(resources)+len(knowledge))
	for _, r := range resources {
		scores = append(scores, a.scorer.ScoreResource(r))
	}
	for _, k := range knowledge {
		scores = append(scores, a.scorer.ScoreKnowledge(ctx, k))
	}
	aggregate := trust.Aggregate(scores)

	decision := a.gate.Evaluate(message, resources, knowledge, aggregate)

	if decision.EmergencyOverride && len(resources) == 0 {
		resources = a.store.EmergencyResources(jc.Location)
	}

	switch {
	case !decision.ShouldRespond:
		envelope = a.limitationEnvelope(message, jc, aggregate)
	case decision.EmergencyOverride && len(resources) == 0:
		// Catalogue has nothing for an emergency query; the national
		// crisis numbers still go out.
		envelope = a.limitationEnvelope(message, jc, aggregate)
	default:
		envelope = a.composeEnvelope(ctx, jc, decision, resources, knowledge, aggregate)
	}

	a.history.Append(userID, jc.Stage)
	return envelope
}

func (a *Assistant) composeEnvelope(ctx context.Context, jc model.JourneyContext, decision gate.Decision, resources []model.Resource, knowledge []model.KnowledgeEntry, aggregate float64) model.ResponseEnvelope {
	result := a.composer.Compose(compose.Input{
		Context:   jc,
		Resources: resources,
		Knowledge: knowledge,
	})

	message := result.Message
	if a.polisher.IsEnabled() {
		allowed := make([]string, 0, len(result.Resources)+len(result.Knowledge))
		for _, r := range result.Resources {
			allowed = append(allowed, r.Title)
		}
		for _, k := range result.Knowledge {
			allowed = append(allowed, k.Title)
		}
		polished, err := a.polisher.Polish(ctx, message, jc.Stage, allowed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: message polish rejected, keeping deterministic text: %v\n", err)
		} else {
			message = polished
		}
	}

	interpretation := trust.Interpret(aggregate)
	return model.ResponseEnvelope{
		ID:                  uuid.NewString(),
		Message:             message,
		Stage:               jc.Stage,
		NextStageGuidance:   result.NextStageGuidance,
		Resources:           result.Resources,
		Knowledge:           result.Knowledge,
		FollowUpRequired:    result.FollowUpRequired,
		CulturalAffirmation: result.CulturalAffirmation,
		TrustScore:          aggregate,
		TrustTier:           string(interpretation.Tier),
		Sources:             summarizeSources(result.Knowledge),
		// Feedback is invited on every answer below the high tier, not
		// only on limitation replies: medium-tier answers are exactly the
		// ones whose catalogue coverage we most need signal on.
		RequestFeedback:     decision.Tier != gate.TierHigh,
		SpecificInformation: len(result.Resources) > 0 || len(result.Knowledge) > 0,
		Source:              model.SourcePipeline,
		CreatedAt:           a.now().UTC(),
	}
}

func (a *Assistant) limitationEnvelope(message string, jc model.JourneyContext, aggregate float64) model.ResponseEnvelope {
	lim := a.gate.Limitation(message)

	// The limitation envelope never carries specific content, with one
	// exception: emergency-flagged resources when the query was an
	// emergency.
	var resources []model.Resource
	if lim.Emergency {
		resources = a.store.EmergencyResources(jc.Location)
	}

	interpretation := trust.Interpret(aggregate)
	return model.ResponseEnvelope{
		ID:                  uuid.NewString(),
		Message:             lim.Message,
		Stage:               jc.Stage,
		Resources:           resources,
		FollowUpRequired:    lim.Emergency,
		TrustScore:          aggregate,
		TrustTier:           string(interpretation.Tier),
		RequestFeedback:     true,
		SpecificInformation: false,
		Source:              model.SourceLimitation,
		CreatedAt:           a.now().UTC(),
	}
}

// fallbackEnvelope is the last-resort reply for unexpected internal faults
func (a *Assistant) fallbackEnvelope() model.ResponseEnvelope {
	return model.ResponseEnvelope{
		ID:                  uuid.NewString(),
		Message:             "Sorry — something went wrong on my side and I can't answer properly right now. If you need urgent support, call Samaritans on 116 123 (24/7) or 999 in an emergency.",
		Stage:               model.StageGrowth,
		TrustScore:          0,
		TrustTier:           string(trust.TierVeryLow),
		RequestFeedback:     true,
		SpecificInformation: false,
		Source:              model.SourceFallback,
		CreatedAt:           a.now().UTC(),
	}
}

// ReadyForNextStage reports whether the user's history shows progression:
// a returning user whose current stage is past crisis, with at least one
// earlier stage strictly behind the current one.
func (a *Assistant) ReadyForNextStage(userID string) bool {
	stages := a.history.Stages(userID)
	if len(stages) < 2 {
		return false
	}

	current := stages[len(stages)-1]
	if current == model.StageCrisis {
		return false
	}
	for _, s := range stages[:len(stages)-1] {
		if s.Rank() < current.Rank() {
			return true
		}
	}
	return false
}

// RecordFeedback forwards feedback to the sink fire-and-forget. The
// response has already been returned; sink failures are logged and
// swallowed.
func (a *Assistant) RecordFeedback(responseID, userID string, rating int, helpful bool, comment string) {
	if a.feedback == nil {
		return
	}

	fb := Feedback{
		ResponseID: responseID,
		UserID:     userID,
		Rating:     rating,
		Helpful:    helpful,
		Comment:    comment,
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "Warning: feedback sink panic recovered: %v\n", r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.feedback.Record(ctx, fb); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: feedback sink error: %v\n", err)
		}
	}()
}

func summarizeSources(knowledge []model.KnowledgeEntry) model.SourceSummary {
	summary := model.SourceSummary{}
	for _, k := range knowledge {
		summary.Total++
		if k.Verification == model.VerificationVerified {
			summary.Verified++
		} else {
			summary.Unverified++
		}
	}
	return summary
}
