package topicquery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
	"github.com/heartmarshall/topicreview-backend/internal/query"
)

// OutputFormat selects how Processor.Query writes records.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat parses a format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", domain.NewValidationError("format", "must be text or json")
}

// defaultSortKey sorts after every real cursor key.
const defaultSortKey = "z"

// Processor runs ad-hoc topic queries for batch callers.
type Processor struct {
	log      *slog.Logger
	deps     Deps
	rw       *query.Rewriter[*TopicData]
	maxLimit int
}

// NewProcessor creates a Processor. A maxLimit of zero or less disables
// querying.
func NewProcessor(log *slog.Logger, deps Deps, maxLimit int) *Processor {
	return &Processor{
		log:      log.With("service", "topicquery"),
		deps:     deps,
		rw:       NewRewriter(deps.Topics),
		maxLimit: maxLimit,
	}
}

// Compiled is a planned query ready to read.
type Compiled struct {
	Source  DataSource
	Visible Predicate
	Limit   int
}

// Compile parses text for u and plans it. Queries without a cursor bound
// start from the newest topic. Every query is capped at the processor's
// limit and restricted to topics u can see.
func (p *Processor) Compile(ctx context.Context, u *domain.User, text string) (*Compiled, error) {
	if p.maxLimit <= 0 {
		return nil, domain.ErrSearchDisabled
	}
	b := NewBuilder(p.deps, u, p.maxLimit)
	q, err := b.Parse(ctx, text)
	if err != nil {
		return nil, err
	}
	if !HasSortKey(q) {
		q = query.And(q, b.SortKeyBefore(defaultSortKey))
	}
	return p.plan(b, q, p.maxLimit)
}

// CompilePage parses text for u and plans one page of at most limit topics
// strictly past pos in dir. An empty pos starts at the newest topic for
// ScanDescending and the oldest for ScanAscending.
func (p *Processor) CompilePage(
	ctx context.Context,
	u *domain.User,
	text, pos string,
	limit int,
	dir domain.ScanDirection,
) (*Compiled, error) {
	if p.maxLimit <= 0 {
		return nil, domain.ErrSearchDisabled
	}
	if limit <= 0 {
		limit = p.maxLimit
	}
	b := NewBuilder(p.deps, u, p.maxLimit)
	q, err := b.Parse(ctx, text)
	if err != nil {
		return nil, err
	}
	var cursor Predicate
	if dir == domain.ScanAscending {
		cursor = b.SortKeyAfter(pos)
	} else {
		if pos == "" {
			pos = defaultSortKey
		}
		cursor = b.SortKeyBefore(pos)
	}
	return p.plan(b, query.And(q, cursor), limit)
}

func (p *Processor) plan(b *Builder, q Predicate, limit int) (*Compiled, error) {
	visible := b.IsVisible()
	q = query.And(q, b.Limit(limit), visible)

	src, err := Plan(p.rw, p.deps.Topics, q)
	if err != nil {
		return nil, err
	}
	n := GetLimit(src)
	if n <= 0 {
		n = limit
	}
	return &Compiled{Source: src, Visible: visible, Limit: n}, nil
}

// Run compiles and reads text for u, returning visible topics newest first.
func (p *Processor) Run(ctx context.Context, u *domain.User, text string) ([]*domain.Topic, error) {
	ctx, span := startQuerySpan(ctx, "Processor.Run", text)
	defer span.End()
	return p.execute(ctx, span, text, domain.ScanDescending, func() (*Compiled, error) {
		return p.Compile(ctx, u, text)
	})
}

// Search reads one page of text for u. See CompilePage for the paging
// rules. Topics come back sorted in dir.
func (p *Processor) Search(
	ctx context.Context,
	u *domain.User,
	text, pos string,
	limit int,
	dir domain.ScanDirection,
) ([]*domain.Topic, error) {
	ctx, span := startQuerySpan(ctx, "Processor.Search", text)
	defer span.End()
	span.SetAttributes(
		attribute.String("topicquery.pos", pos),
		attribute.String("topicquery.dir", string(dir)),
		attribute.Int("topicquery.limit", limit),
	)
	return p.execute(ctx, span, text, dir, func() (*Compiled, error) {
		return p.CompilePage(ctx, u, text, pos, limit, dir)
	})
}

func (p *Processor) execute(
	ctx context.Context,
	span trace.Span,
	text string,
	dir domain.ScanDirection,
	compile func() (*Compiled, error),
) ([]*domain.Topic, error) {
	start := time.Now()
	defer func() { queryDuration.Observe(time.Since(start).Seconds()) }()

	c, err := compile()
	if err != nil {
		p.observeError(ctx, text, err)
		span.SetStatus(codes.Error, err.Error())
		return nil, p.publicError(err)
	}
	r, err := ReadVisible(ctx, c.Source, c.Visible, p.deps.Topics, dir, c.Limit)
	if err != nil {
		p.observeError(ctx, text, err)
		span.SetStatus(codes.Error, err.Error())
		return nil, p.publicError(err)
	}

	queryTotal.WithLabelValues(outcomeOK).Inc()
	queryRows.Observe(float64(len(r)))
	span.SetAttributes(attribute.Int("topicquery.rows", len(r)))
	return Topics(r), nil
}

func (p *Processor) observeError(ctx context.Context, text string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedQuery):
		queryTotal.WithLabelValues(outcomeUnsupported).Inc()
	case errors.Is(err, domain.ErrQueryParse), errors.Is(err, domain.ErrSearchDisabled):
		queryTotal.WithLabelValues(outcomeParseError).Inc()
	default:
		queryTotal.WithLabelValues(outcomeStoreError).Inc()
		p.log.ErrorContext(ctx, "cannot query database",
			slog.String("query", text),
			slog.String("error", err.Error()),
		)
	}
}

// publicError hides store failures behind ErrCannotQuery.
func (p *Processor) publicError(err error) error {
	if errors.Is(err, domain.ErrQueryParse) ||
		errors.Is(err, domain.ErrUnsupportedQuery) ||
		errors.Is(err, domain.ErrSearchDisabled) {
		return err
	}
	return domain.ErrCannotQuery
}

// ---------------------------------------------------------------------------
// Batch output
// ---------------------------------------------------------------------------

type topicRecord struct {
	Type        string    `json:"type"        yaml:"type"`
	ID          int32     `json:"id"          yaml:"id"`
	Key         string    `json:"key"         yaml:"key"`
	Project     string    `json:"project"     yaml:"project"`
	Owner       uuid.UUID `json:"owner"       yaml:"owner"`
	Subject     string    `json:"subject"     yaml:"subject"`
	Status      string    `json:"status"      yaml:"status"`
	SortKey     string    `json:"sortKey"     yaml:"sortKey"`
	LastUpdated int64     `json:"lastUpdated" yaml:"lastUpdated"`
}

type statsRecord struct {
	Type                string `json:"type"                yaml:"type"`
	RowCount            int    `json:"rowCount"            yaml:"rowCount"`
	RunTimeMilliseconds int64  `json:"runTimeMilliseconds" yaml:"runTimeMilliseconds"`
}

type errorRecord struct {
	Type    string `json:"type"    yaml:"type"`
	Message string `json:"message" yaml:"message"`
}

func newTopicRecord(t *domain.Topic) topicRecord {
	return topicRecord{
		Type:        "topic",
		ID:          int32(t.ID),
		Key:         t.Key,
		Project:     t.Project,
		Owner:       t.Owner,
		Subject:     t.Subject,
		Status:      t.Status.String(),
		SortKey:     t.SortKey,
		LastUpdated: t.LastUpdatedOn.Unix(),
	}
}

// Query runs text for u and writes one record per topic followed by a stats
// record. Query failures are written as an error record. The returned error
// reports only failures writing to w.
func (p *Processor) Query(ctx context.Context, u *domain.User, text string, w io.Writer, format OutputFormat) error {
	enc := newRecordEncoder(w, format)
	start := time.Now()

	topics, err := p.Run(ctx, u, text)
	if err != nil {
		return enc.encode(errorRecord{Type: "error", Message: errorMessage(err)})
	}
	for _, t := range topics {
		if err := enc.encode(newTopicRecord(t)); err != nil {
			return err
		}
	}
	return enc.encode(statsRecord{
		Type:                "stats",
		RowCount:            len(topics),
		RunTimeMilliseconds: time.Since(start).Milliseconds(),
	})
}

func errorMessage(err error) string {
	var pe *domain.QueryParseError
	switch {
	case errors.As(err, &pe):
		return pe.Message
	case errors.Is(err, domain.ErrSearchDisabled):
		return "query disabled"
	default:
		return domain.ErrCannotQuery.Error()
	}
}

type recordEncoder struct {
	w      io.Writer
	format OutputFormat
	json   *json.Encoder
}

func newRecordEncoder(w io.Writer, format OutputFormat) *recordEncoder {
	return &recordEncoder{w: w, format: format, json: json.NewEncoder(w)}
}

func (e *recordEncoder) encode(v any) error {
	if e.format == FormatJSON {
		if err := e.json.Encode(v); err != nil {
			return fmt.Errorf("write json record: %w", err)
		}
		return nil
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal text record: %w", err)
	}
	if _, err := e.w.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("write text record: %w", err)
	}
	return nil
}
