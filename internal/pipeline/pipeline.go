// Package pipeline orchestrates one feed message end to end: parse and
// validate, derive courts and hearing dates, run each case as an independent
// unit of work, and reconcile the case store. No error escapes Handle
// unreported; every failure becomes an event.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"caseflow/internal/cases/mapper"
	"caseflow/internal/cases/models"
	"caseflow/internal/events"
	"caseflow/internal/feed/extract"
	feed "caseflow/internal/feed/models"
	"caseflow/internal/feed/parser"
	"caseflow/internal/match"
	"caseflow/internal/pipeline/metrics"
	pkgerrors "caseflow/pkg/errors"
)

// CaseStore is the synchronization surface the pipeline drives.
type CaseStore interface {
	GetCase(ctx context.Context, courtCode, caseNo string) (*models.CourtCase, error)
	PutCase(ctx context.Context, record models.CourtCase) error
	PurgeAbsent(ctx context.Context, courtCode string, casesByDate map[time.Time][]string) error
}

// Matcher resolves a defendant to an offender identity.
type Matcher interface {
	Match(ctx context.Context, fullName string, dateOfBirth time.Time) (match.Result, error)
}

// Guard skips feed documents already processed recently. A nil guard
// processes everything.
type Guard interface {
	Seen(ctx context.Context, key string) (bool, error)
}

// Pipeline processes feed messages.
type Pipeline struct {
	parser      *parser.Parser
	mapper      *mapper.Mapper
	matcher     Matcher
	store       CaseStore
	sink        events.Sink
	guard       Guard
	metrics     *metrics.Metrics
	logger      *slog.Logger
	tracer      trace.Tracer
	offsetDays  int
	concurrency int
	now         func() time.Time
}

// Option configures the Pipeline.
type Option func(*Pipeline)

func WithGuard(g Guard) Option {
	return func(p *Pipeline) { p.guard = g }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithFutureOffsetDays sets the companion-date offset used when a list
// carries a single hearing date.
func WithFutureOffsetDays(days int) Option {
	return func(p *Pipeline) { p.offsetDays = days }
}

// WithConcurrency bounds the number of cases in flight at once.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) { p.concurrency = n }
}

// WithClock overrides the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

func New(p *parser.Parser, m *mapper.Mapper, matcher Matcher, store CaseStore, sink events.Sink, opts ...Option) (*Pipeline, error) {
	if p == nil || m == nil {
		return nil, fmt.Errorf("parser and mapper are required")
	}
	if matcher == nil {
		return nil, fmt.Errorf("matcher is required")
	}
	if store == nil {
		return nil, fmt.Errorf("case store is required")
	}
	if sink == nil {
		return nil, fmt.Errorf("event sink is required")
	}
	pl := &Pipeline{
		parser:      p,
		mapper:      m,
		matcher:     matcher,
		store:       store,
		sink:        sink,
		logger:      slog.Default(),
		tracer:      otel.Tracer("caseflow/pipeline"),
		offsetDays:  2,
		concurrency: 8,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(pl)
	}
	return pl, nil
}

// Handle processes one raw feed payload. The returned error reports a
// message-level rejection (parse or validation); per-case failures are
// isolated and surface only as events.
func (p *Pipeline) Handle(ctx context.Context, payload string) error {
	ctx, span := p.tracer.Start(ctx, "pipeline.Handle")
	defer span.End()

	p.count(func(m *metrics.Metrics) { m.MessagesReceived.Inc() })
	p.emit(ctx, events.Event{Type: events.TypeMessageReceived})

	doc, err := p.parser.Parse(payload)
	if err != nil {
		p.count(func(m *metrics.Metrics) { m.MessagesRejected.Inc() })
		p.logger.ErrorContext(ctx, "feed message rejected", "error", err)
		p.emit(ctx, events.Event{
			Type:       events.TypeMessageParseFailure,
			Detail:     err.Error(),
			RawMessage: Redact(payload),
		})
		return err
	}

	if skip := p.alreadyProcessed(ctx, doc.Info); skip {
		p.count(func(m *metrics.Metrics) { m.MessagesDuplicate.Inc() })
		p.emit(ctx, events.Event{Type: events.TypeMessageProcessed, Detail: "duplicate delivery skipped"})
		return nil
	}

	sessions := doc.Job.Sessions
	courts := extract.CourtCodes(sessions)
	dates := extract.HearingDates(sessions, p.offsetDays, p.now(), p.logger)
	span.SetAttributes(
		attribute.Int("feed.courts", len(courts)),
		attribute.Int("feed.dates", len(dates)),
	)

	total := 0
	for _, court := range courts {
		total += p.processCourt(ctx, court, sessions, dates)
	}

	p.emit(ctx, events.Event{Type: events.TypeMessageProcessed, CaseCount: total})
	return nil
}

// processCourt runs every case for the court as an independent unit of work,
// then reconciles the court's hearing dates with the store. Returns the
// number of cases in the batch for the court.
func (p *Pipeline) processCourt(ctx context.Context, courtCode string, sessions []feed.Session, dates []time.Time) int {
	batch := extract.CasesForCourt(courtCode, sessions)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for _, sc := range batch {
		sc := sc
		g.Go(func() error {
			p.processCase(gctx, courtCode, sc)
			return nil
		})
	}
	_ = g.Wait()

	if err := p.store.PurgeAbsent(ctx, courtCode, purgePayload(batch, dates)); err != nil {
		p.count(func(m *metrics.Metrics) { m.PurgeFailures.Inc() })
		p.logger.ErrorContext(ctx, "purge-absent failed", "court_code", courtCode, "error", err)
	}
	return len(batch)
}

// processCase runs the per-case sequence: fetch existing, merge or map anew,
// match when eligible, persist. Failures stay inside this unit; siblings are
// unaffected.
func (p *Pipeline) processCase(ctx context.Context, courtCode string, sc extract.SessionCase) {
	ctx, span := p.tracer.Start(ctx, "pipeline.processCase",
		trace.WithAttributes(attribute.String("court_code", courtCode)))
	defer span.End()

	existing, err := p.store.GetCase(ctx, courtCode, sc.Case.CaseNo)
	if err != nil {
		p.count(func(m *metrics.Metrics) { m.CasesFailed.Inc() })
		p.logger.ErrorContext(ctx, "fetch existing case failed",
			"court_code", courtCode,
			"case_no", sc.Case.CaseNo,
			"error", err,
		)
		p.emit(ctx, events.Event{
			Type:      events.TypeCaseUpdateFailure,
			CourtCode: courtCode,
			CaseNo:    sc.Case.CaseNo,
			Detail:    pkgerrors.CodeOf(err).String(),
		})
		return
	}

	var record models.CourtCase
	if existing != nil {
		record = p.mapper.Merge(sc, *existing)
	} else {
		record = p.mapper.NewFromCase(sc)
	}

	if record.ShouldMatchToOffender() {
		record = p.matchOffender(ctx, record, sc)
	}

	if err := p.store.PutCase(ctx, record); err != nil {
		// The store client has already emitted the terminal failure event.
		p.count(func(m *metrics.Metrics) { m.CasesFailed.Inc() })
		p.logger.ErrorContext(ctx, "case upsert failed",
			"court_code", courtCode,
			"case_no", record.CaseNo,
			"error", err,
		)
		return
	}
	p.count(func(m *metrics.Metrics) { m.CasesProcessed.Inc() })
}

// matchOffender attempts defendant identification. Any failure degrades to
// the no-match outcome: the case is persisted either way.
func (p *Pipeline) matchOffender(ctx context.Context, record models.CourtCase, sc extract.SessionCase) models.CourtCase {
	result, err := p.matcher.Match(ctx, sc.Case.Name, sc.Case.DateOfBirth.Time)
	if err != nil {
		p.count(func(m *metrics.Metrics) { m.MatchFailures.Inc() })
		p.logger.WarnContext(ctx, "offender match failed, saving case without linkage",
			"court_code", record.CourtCode,
			"case_no", record.CaseNo,
			"error", err,
		)
		p.emit(ctx, events.Event{
			Type:      events.TypeOffenderMatchFailure,
			CourtCode: record.CourtCode,
			CaseNo:    record.CaseNo,
			Detail:    pkgerrors.CodeOf(err).String(),
		})
		return record
	}
	if !result.Matched {
		return record
	}

	p.count(func(m *metrics.Metrics) { m.OffendersMatched.Inc() })
	p.emit(ctx, events.Event{
		Type:           events.TypeOffenderMatched,
		CourtCode:      record.CourtCode,
		CaseNo:         record.CaseNo,
		CRN:            result.Identifiers.CRN,
		MatchedBy:      string(result.MatchedBy),
		CandidateCount: result.CandidateCount,
	})
	return p.mapper.AttachOffender(record, result.Identifiers, result.ProbationStatus, result.Groups)
}

// purgePayload groups the batch's case numbers by session hearing date over
// the full derived date set. Dates with no cases map to an empty list so the
// store clears everything it holds for them.
func purgePayload(batch []extract.SessionCase, dates []time.Time) map[time.Time][]string {
	out := make(map[time.Time][]string, len(dates))
	for _, d := range dates {
		out[d] = []string{}
	}
	for _, sc := range batch {
		d := sc.Session.DateOfHearing.Time
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		out[day] = append(out[day], sc.Case.CaseNo)
	}
	return out
}

// alreadyProcessed consults the dedupe guard. Guard failures never block a
// message; at worst a duplicate is processed twice, which the upsert absorbs.
func (p *Pipeline) alreadyProcessed(ctx context.Context, info feed.Info) bool {
	if p.guard == nil {
		return false
	}
	key := fmt.Sprintf("%d:%s:%s", info.SequenceNumber, info.OUCode, info.DateOfHearing.Format("2006-01-02"))
	seen, err := p.guard.Seen(ctx, key)
	if err != nil {
		p.logger.WarnContext(ctx, "dedupe guard unavailable", "error", err)
		return false
	}
	return seen
}

func (p *Pipeline) emit(ctx context.Context, event events.Event) {
	if err := p.sink.Emit(ctx, events.Stamp(event)); err != nil {
		p.logger.WarnContext(ctx, "event emission failed", "event_type", event.Type, "error", err)
	}
}

func (p *Pipeline) count(fn func(*metrics.Metrics)) {
	if p.metrics != nil {
		fn(p.metrics)
	}
}
