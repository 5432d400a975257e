package payables

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/SttarkMax/sistema/pkg/types"
)

type stubPayablesAPI struct {
	entries         []models.AccountsPayableEntry
	deleteSeriesErr error
	deletedSeries   []string
	deletedIDs      []string
	saved           []models.AccountsPayableEntry
	seriesCalls     int
}

func (s *stubPayablesAPI) ListAccountsPayable(ctx context.Context) ([]models.AccountsPayableEntry, error) {
	return s.entries, nil
}

func (s *stubPayablesAPI) SaveAccountsPayable(ctx context.Context, entry models.AccountsPayableEntry) (*models.AccountsPayableEntry, error) {
	s.saved = append(s.saved, entry)
	entry.ID = "new-id"
	return &entry, nil
}

func (s *stubPayablesAPI) CreateAccountsPayableSeries(ctx context.Context, base models.AccountsPayableEntry, installments int, frequency enums.InstallmentFrequency) ([]models.AccountsPayableEntry, error) {
	s.seriesCalls++
	return GenerateSeries(base, installments, frequency, fixedNow)
}

func (s *stubPayablesAPI) DeleteAccountsPayableSeries(ctx context.Context, seriesID string) error {
	if s.deleteSeriesErr != nil {
		return s.deleteSeriesErr
	}
	s.deletedSeries = append(s.deletedSeries, seriesID)
	return nil
}

func (s *stubPayablesAPI) DeleteAccountsPayable(ctx context.Context, id string) error {
	s.deletedIDs = append(s.deletedIDs, id)
	return nil
}

func (s *stubPayablesAPI) ToggleAccountsPayablePaid(ctx context.Context, id string) (*models.AccountsPayableEntry, error) {
	for _, e := range s.entries {
		if e.ID == id {
			e.IsPaid = !e.IsPaid
			return &e, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Conta não encontrada")
}

func newTestService(t *testing.T, api *stubPayablesAPI) Service {
	t.Helper()
	svc, err := NewService(api, func() time.Time { return fixedNow })
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestDeleteSeriesIsAllOrNothing(t *testing.T) {
	book, seriesID := seededBook(t)
	api := &stubPayablesAPI{entries: book.Entries(), deleteSeriesErr: pkgerrors.New(pkgerrors.CodeDependency, "Falha ao excluir")}
	svc := newTestService(t, api)

	if _, err := svc.DeleteSeries(context.Background(), seriesID); !pkgerrors.Is(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected backend failure to surface, got %v", err)
	}

	api.deleteSeriesErr = nil
	remaining, err := svc.DeleteSeries(context.Background(), seriesID)
	if err != nil {
		t.Fatalf("DeleteSeries: %v", err)
	}
	if remaining.Len() != 1 {
		t.Fatalf("expected only the standalone entry left, got %d", remaining.Len())
	}
	if len(api.deletedSeries) != 1 || api.deletedSeries[0] != seriesID {
		t.Fatalf("expected backend series delete, got %v", api.deletedSeries)
	}
}

func TestDeleteSeriesUnknownIsNotFound(t *testing.T) {
	book, _ := seededBook(t)
	api := &stubPayablesAPI{entries: book.Entries()}
	svc := newTestService(t, api)

	if _, err := svc.DeleteSeries(context.Background(), "nope"); !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(api.deletedSeries) != 0 {
		t.Fatalf("backend must not be called for unknown series")
	}
}

func TestDeleteEntryLeavesSiblings(t *testing.T) {
	book, seriesID := seededBook(t)
	api := &stubPayablesAPI{entries: book.Entries()}
	svc := newTestService(t, api)

	remaining, err := svc.DeleteEntry(context.Background(), "s1")
	if err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	siblings := remaining.Series(seriesID)
	if len(siblings) != 2 || *siblings[0].InstallmentNumberOfSeries != 2 {
		t.Fatalf("siblings should keep numbering, got %+v", siblings)
	}

	if _, err := svc.DeleteEntry(context.Background(), "missing"); !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(api.deletedIDs) != 1 {
		t.Fatalf("expected a single backend delete, got %v", api.deletedIDs)
	}
}

func TestCreateSeriesValidatesBeforeCallingBackend(t *testing.T) {
	api := &stubPayablesAPI{}
	svc := newTestService(t, api)

	_, err := svc.CreateSeries(context.Background(), SeriesRequest{
		BaseEntry:    baseEntry(types.NewDate(2025, time.June, 1)),
		Installments: 0,
		Frequency:    enums.InstallmentFrequencyMonthly,
	})
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if api.seriesCalls != 0 {
		t.Fatalf("backend should not be called")
	}

	entries, err := svc.CreateSeries(context.Background(), SeriesRequest{
		BaseEntry:    baseEntry(types.NewDate(2025, time.June, 1)),
		Installments: 3,
		Frequency:    enums.InstallmentFrequencyWeekly,
	})
	if err != nil || len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d err=%v", len(entries), err)
	}
}

func TestPreviewSeriesStampsClock(t *testing.T) {
	svc := newTestService(t, &stubPayablesAPI{})
	entries, err := svc.PreviewSeries(SeriesRequest{
		BaseEntry:    baseEntry(types.NewDate(2025, time.June, 1)),
		Installments: 2,
		Frequency:    enums.InstallmentFrequencyMonthly,
	})
	if err != nil {
		t.Fatalf("PreviewSeries: %v", err)
	}
	if !entries[1].CreatedAt.Equal(fixedNow) {
		t.Fatalf("expected createdAt from clock, got %v", entries[1].CreatedAt)
	}
}

func TestSaveStampsCreatedAtForNewEntries(t *testing.T) {
	api := &stubPayablesAPI{}
	svc := newTestService(t, api)

	if _, err := svc.Save(context.Background(), baseEntry(types.NewDate(2025, time.June, 1))); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !api.saved[0].CreatedAt.Equal(fixedNow) {
		t.Fatalf("expected createdAt stamped, got %v", api.saved[0].CreatedAt)
	}

	if _, err := svc.Save(context.Background(), models.AccountsPayableEntry{Name: "x"}); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for missing due date, got %v", err)
	}
}

func TestTogglePaidPassesThroughBackendErrors(t *testing.T) {
	book, _ := seededBook(t)
	svc := newTestService(t, &stubPayablesAPI{entries: book.Entries()})

	updated, err := svc.TogglePaid(context.Background(), "rent")
	if err != nil || !updated.IsPaid {
		t.Fatalf("expected rent toggled to paid, got %+v err=%v", updated, err)
	}

	_, err = svc.TogglePaid(context.Background(), "missing")
	var typed *pkgerrors.Error
	if !errors.As(err, &typed) || typed.Message() != "Conta não encontrada" {
		t.Fatalf("expected backend message preserved, got %v", err)
	}
}
