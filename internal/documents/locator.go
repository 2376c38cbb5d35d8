package documents

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/Werneck0live/simulador-trabalhista/internal/accounts"
	"github.com/Werneck0live/simulador-trabalhista/internal/apperrors"
	"github.com/Werneck0live/simulador-trabalhista/internal/models"
)

// YearPolicy decides which year a document must belong to when a month is requested.
type YearPolicy string

const (
	// CurrentYearOnly matches only documents of the current calendar year.
	CurrentYearOnly YearPolicy = "current"
	// AnyYear matches the month in any year; the first listed document wins.
	AnyYear YearPolicy = "any"
)

func ParseYearPolicy(s string) YearPolicy {
	if strings.EqualFold(strings.TrimSpace(s), string(AnyYear)) {
		return AnyYear
	}
	return CurrentYearOnly
}

type Locator struct {
	dir    accounts.Directory
	policy YearPolicy
	now    func() time.Time
	log    *slog.Logger
}

type Option func(*Locator)

func WithYearPolicy(p YearPolicy) Option    { return func(l *Locator) { l.policy = p } }
func WithClock(now func() time.Time) Option { return func(l *Locator) { l.now = now } }
func WithLogger(log *slog.Logger) Option    { return func(l *Locator) { l.log = log } }

func NewLocator(dir accounts.Directory, opts ...Option) *Locator {
	l := &Locator{dir: dir, policy: CurrentYearOnly, now: time.Now, log: slog.Default()}
	for _, o := range opts {
		o(l)
	}
	l.log = l.log.With("cmp", "documents")
	return l
}

// ListDocuments returns the documents of a resolved company, newest first.
func (l *Locator) ListDocuments(ctx context.Context, accountID, companyID string) ([]models.Document, error) {
	src, err := l.dir.Source(accountID)
	if err != nil {
		return nil, err
	}
	docs, err := src.ListDocuments(ctx, companyID)
	if err != nil {
		return nil, apperrors.E(apperrors.KindRemoteUnavailable, "documents.list", err)
	}
	l.log.Debug("documents_listed", "account", accountID, "company_id", companyID, "total", len(docs))
	return docs, nil
}

// SelectDocument returns the first document whose title contains
// requestedType and, when requestedMonth is set, whose reference month is
// that month. Returns nil when nothing matches.
func (l *Locator) SelectDocument(docs []models.Document, requestedType, requestedMonth string) *models.Document {
	fold := cases.Fold()
	wantType := fold.String(strings.TrimSpace(requestedType))

	var wantMonth time.Month
	filterMonth := strings.TrimSpace(requestedMonth) != ""
	if filterMonth {
		m, ok := parseMonth(requestedMonth)
		if !ok {
			return nil
		}
		wantMonth = m
	}
	currentYear := l.now().Year()

	for i := range docs {
		d := &docs[i]
		if !strings.Contains(fold.String(d.Title), wantType) {
			continue
		}
		if !filterMonth {
			return d
		}
		month, year := DocumentMonth(*d)
		if month != wantMonth {
			continue
		}
		if l.policy == CurrentYearOnly && year != currentYear {
			continue
		}
		return d
	}
	return nil
}

// DocumentMonth is the billing month of d: a MM/YYYY reference in the title,
// then in the description, else the creation date.
func DocumentMonth(d models.Document) (time.Month, int) {
	if m, y, ok := referenceMonth(d.Title); ok {
		return m, y
	}
	if m, y, ok := referenceMonth(d.Description); ok {
		return m, y
	}
	return d.CreatedAt.Month(), d.CreatedAt.Year()
}

// FetchDocumentDetail attaches the detail payload of doc. A missing link or a
// failed fetch returns doc unchanged.
func (l *Locator) FetchDocumentDetail(ctx context.Context, accountID string, doc models.Document) models.Document {
	if doc.DetailLink == "" {
		return doc
	}
	src, err := l.dir.Source(accountID)
	if err != nil {
		l.log.Warn("document_detail_skipped", "document_id", doc.ID, "err", err)
		return doc
	}
	detail, err := src.GetDocumentDetail(ctx, doc.DetailLink)
	if err != nil {
		l.log.Warn("document_detail_failed", "document_id", doc.ID, "link", doc.DetailLink, "err", err)
		return doc
	}
	doc.Detail = detail
	return doc
}
