// AngelaMos | 2026
// reconcile.go

package importer

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/carterperez-dev/dojo-console/internal/member"
	"github.com/carterperez-dev/dojo-console/internal/metrics"
)

// MaxReportedErrors caps the row errors returned in a Summary. Failed
// still counts every failure.
const MaxReportedErrors = 20

const tracerName = "github.com/carterperez-dev/dojo-console/internal/importer"

// Store is the slice of member persistence an import needs. Every call
// is scoped to one gym and ignores soft-deleted members.
type Store interface {
	FindByPhones(ctx context.Context, gymID string, phones []string) ([]member.PhoneRef, error)
	Insert(ctx context.Context, gymID string, fields member.ImportFields) (member.PhoneRef, error)
	UpdateByID(ctx context.Context, gymID, id string, fields member.ImportFields) error
}

type Summary struct {
	Total   int        `json:"total"`
	Created int        `json:"created"`
	Updated int        `json:"updated"`
	Failed  int        `json:"failed"`
	Errors  []RowError `json:"errors"`
}

type Reconciler struct {
	store    Store
	notifier member.ChangeNotifier
	tracer   trace.Tracer
}

func NewReconciler(store Store, notifier member.ChangeNotifier) *Reconciler {
	return &Reconciler{
		store:    store,
		notifier: notifier,
		tracer:   otel.Tracer(tracerName),
	}
}

// ImportFile decodes an uploaded file and imports its rows.
func (r *Reconciler) ImportFile(
	ctx context.Context,
	gymID string,
	format Format,
	data []byte,
) (*Summary, error) {
	rows, err := ReadRows(format, data)
	if err != nil {
		metrics.RecordImportRejected(rejectReason(err))
		return nil, err
	}

	return r.Import(ctx, gymID, rows)
}

// Import maps the header row, validates the data rows and upserts the
// valid ones by phone number in row order. A row that fails to persist is
// reported and the batch carries on; nothing is rolled back.
func (r *Reconciler) Import(
	ctx context.Context,
	gymID string,
	rows [][]string,
) (*Summary, error) {
	ctx, span := r.tracer.Start(ctx, "importer.Import",
		trace.WithAttributes(
			attribute.String("gym.id", gymID),
			attribute.Int("import.rows", len(rows)),
		),
	)
	defer span.End()

	if len(rows) < 2 {
		metrics.RecordImportRejected(rejectReason(ErrNoDataRows))
		return nil, ErrNoDataRows
	}

	headers, err := MapHeaders(rows[0])
	if err != nil {
		metrics.RecordImportRejected(rejectReason(err))
		return nil, err
	}

	payloads, rowErrs := ValidateRows(rows[1:], headers)
	summary := &Summary{
		Total:  len(payloads),
		Failed: len(rowErrs),
		Errors: rowErrs,
	}

	if len(payloads) == 0 {
		summary.Errors = capErrors(summary.Errors)
		metrics.RecordImport(0, 0, summary.Failed)
		return summary, nil
	}

	existing, err := r.lookup(ctx, gymID, payloads)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		return nil, err
	}

	for _, p := range payloads {
		if id, ok := existing[p.Fields.Phone]; ok {
			if err := r.store.UpdateByID(ctx, gymID, id, p.Fields); err != nil {
				summary.fail(p.Row, err)
				continue
			}
			summary.Updated++
			continue
		}

		ref, err := r.store.Insert(ctx, gymID, p.Fields)
		if err != nil {
			summary.fail(p.Row, err)
			continue
		}
		summary.Created++
		if ref.ID != "" && ref.Phone != "" {
			existing[ref.Phone] = ref.ID
		}
	}

	summary.Errors = capErrors(summary.Errors)

	span.SetAttributes(
		attribute.Int("import.created", summary.Created),
		attribute.Int("import.updated", summary.Updated),
		attribute.Int("import.failed", summary.Failed),
	)
	metrics.RecordImport(summary.Created, summary.Updated, summary.Failed)
	slog.InfoContext(ctx, "member import finished",
		"gym_id", gymID,
		"total", summary.Total,
		"created", summary.Created,
		"updated", summary.Updated,
		"failed", summary.Failed,
	)

	if summary.Created+summary.Updated > 0 && r.notifier != nil {
		r.notifier.MembersChanged(ctx, gymID)
	}

	return summary, nil
}

func (r *Reconciler) lookup(
	ctx context.Context,
	gymID string,
	payloads []Payload,
) (map[string]string, error) {
	seen := make(map[string]struct{}, len(payloads))
	phones := make([]string, 0, len(payloads))
	for _, p := range payloads {
		if _, ok := seen[p.Fields.Phone]; ok {
			continue
		}
		seen[p.Fields.Phone] = struct{}{}
		phones = append(phones, p.Fields.Phone)
	}

	refs, err := r.store.FindByPhones(ctx, gymID, phones)
	if err != nil {
		return nil, fmt.Errorf("lookup existing members: %w", err)
	}

	existing := make(map[string]string, len(refs))
	for _, ref := range refs {
		existing[ref.Phone] = ref.ID
	}
	return existing, nil
}

func (s *Summary) fail(row int, err error) {
	s.Failed++
	s.Errors = append(s.Errors, RowError{Row: row, Reason: err.Error()})
}

func capErrors(errs []RowError) []RowError {
	if errs == nil {
		return []RowError{}
	}
	if len(errs) > MaxReportedErrors {
		return errs[:MaxReportedErrors]
	}
	return errs
}
