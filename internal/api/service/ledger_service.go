// Package service wires the pure accounting rules to the entry store and
// the event producer. Handlers talk to these interfaces only.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbook/internal/domain/accounting"
	"github.com/ledgerbook/internal/domain/ledger"
	"github.com/ledgerbook/internal/domain/shared"
	"github.com/ledgerbook/internal/platform/messaging/producers"
)

// LedgerServiceImpl implements the LedgerService interface
type LedgerServiceImpl struct {
	chart     *accounting.Chart
	entryRepo ledger.Repository
	producer  producers.MessagePublisher
	logger    *slog.Logger
}

// NewLedgerService creates a new ledger service over the given chart
func NewLedgerService(logger *slog.Logger, chart *accounting.Chart, entryRepo ledger.Repository, producer producers.MessagePublisher) LedgerService {
	return &LedgerServiceImpl{
		chart:     chart,
		entryRepo: entryRepo,
		producer:  producer,
		logger:    logger,
	}
}

// RecordEntry classifies the input and stores the resulting entry. The
// store write must succeed before the lifecycle event is emitted; a
// failed event publish is logged but never fails the recording.
func (s *LedgerServiceImpl) RecordEntry(ctx context.Context, userID uuid.UUID, input *EntryInput) (*ledger.Entry, error) {
	entry, err := s.buildEntry(userID, input)
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.Insert(ctx, entry); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, shared.EntryEventRecorded, entry)

	s.logger.Info("Ledger entry recorded",
		"entry_id", entry.ID.String(),
		"user_id", userID.String(),
		"account", string(entry.Account),
		"debit", entry.Debit.String(),
		"credit", entry.Credit.String(),
	)

	return entry, nil
}

// ListEntries retrieves the user's entries, optionally restricted to one
// account of the chart
func (s *LedgerServiceImpl) ListEntries(ctx context.Context, userID uuid.UUID, account string) ([]*ledger.Entry, error) {
	entries, err := s.loadOwned(ctx, userID)
	if err != nil {
		return nil, err
	}

	if account == "" {
		return entries, nil
	}

	acc := accounting.Account(strings.TrimSpace(account))
	if !s.chart.Contains(acc) {
		return nil, accounting.ErrUnknownAccount{Account: acc}
	}

	return ledger.FilterByAccount(entries, acc), nil
}

// UpdateEntry re-classifies the input and replaces the stored entry. The
// entry keeps its id and creation time; everything else is derived from
// the input again.
func (s *LedgerServiceImpl) UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, input *EntryInput) (*ledger.Entry, error) {
	existing, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ledger.ErrEntryNotFound{EntryID: entryID}
	}

	entry, err := s.buildEntry(userID, input)
	if err != nil {
		return nil, err
	}
	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt

	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, shared.EntryEventUpdated, entry)

	return entry, nil
}

// DeleteEntry removes the user's entry from the store
func (s *LedgerServiceImpl) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	if err := s.entryRepo.Delete(ctx, entryID, userID); err != nil {
		return err
	}

	s.publishEvent(ctx, shared.EntryEventDeleted, &ledger.Entry{ID: entryID, UserID: userID})

	s.logger.Info("Ledger entry deleted",
		"entry_id", entryID.String(),
		"user_id", userID.String(),
	)

	return nil
}

// TrialBalance recomputes the totals over all of the user's entries. The
// summary is derived on every call so it can never drift from the store.
func (s *LedgerServiceImpl) TrialBalance(ctx context.Context, userID uuid.UUID) (ledger.TrialBalance, error) {
	entries, err := s.loadOwned(ctx, userID)
	if err != nil {
		return ledger.TrialBalance{}, err
	}

	return ledger.Summarize(entries), nil
}

// loadOwned reads the user's entries and re-checks the owner stamp on each
// one. The store already scopes by user; this guards against a mis-stamped
// document ever reaching a summary or listing.
func (s *LedgerServiceImpl) loadOwned(ctx context.Context, userID uuid.UUID) ([]*ledger.Entry, error) {
	entries, err := s.entryRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	owned := entries[:0]
	for _, e := range entries {
		if e.UserID == userID {
			owned = append(owned, e)
		}
	}
	return owned, nil
}

// ChartOfAccounts returns the selectable accounts in display order
func (s *LedgerServiceImpl) ChartOfAccounts() []AccountDescriptor {
	accounts := s.chart.Accounts()
	out := make([]AccountDescriptor, 0, len(accounts))
	for _, acc := range accounts {
		cat, _ := s.chart.Category(acc)
		side := "credit"
		if cat.IsDebitNormal() {
			side = "debit"
		}
		out = append(out, AccountDescriptor{
			Account:    acc,
			Category:   cat,
			NormalSide: side,
		})
	}
	return out
}

// buildEntry validates the input against the chart and derives the debit
// and credit legs
func (s *LedgerServiceImpl) buildEntry(userID uuid.UUID, input *EntryInput) (*ledger.Entry, error) {
	acc := accounting.Account(strings.TrimSpace(input.Account))
	dir, err := accounting.ParseDirection(input.Direction)
	if err != nil {
		return nil, err
	}

	debit, credit, err := s.chart.Classify(acc, dir, input.Amount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := input.Date
	if date.IsZero() {
		date = now
	}

	return &ledger.Entry{
		UserID:      userID,
		Date:        date,
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		Direction:   dir,
		Account:     acc,
		Debit:       debit,
		Credit:      credit,
		CreatedAt:   now,
	}, nil
}

// publishEvent emits a lifecycle event keyed by the owning user so events
// of one ledger stay ordered. Failures are logged and swallowed.
func (s *LedgerServiceImpl) publishEvent(ctx context.Context, eventType shared.EntryEventType, entry *ledger.Entry) {
	event := &shared.EntryEvent{
		Type:       eventType,
		EntryID:    entry.ID,
		UserID:     entry.UserID,
		Account:    string(entry.Account),
		Debit:      entry.Debit.String(),
		Credit:     entry.Credit.String(),
		OccurredAt: time.Now().UTC(),
	}

	if err := s.producer.Publish(ctx, entry.UserID.String(), event); err != nil {
		s.logger.Error("Failed to publish entry event",
			"event_type", string(eventType),
			"entry_id", entry.ID.String(),
			"error", err,
		)
	}
}
