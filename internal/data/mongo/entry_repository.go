// Package mongo provides the MongoDB implementation of the ledger entry
// repository. Amounts are stored as decimal strings so no binary floating
// point ever touches the persisted ledger.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ledgerbook/internal/domain/accounting"
	"github.com/ledgerbook/internal/domain/ledger"
)

const (
	// EntryCollectionName is the name of the ledger entry collection
	EntryCollectionName = "ledger_entries"
)

// entryDocument is the persisted shape of a ledger entry
type entryDocument struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	Date        time.Time `bson:"date"`
	Description string    `bson:"description,omitempty"`
	Amount      string    `bson:"amount"`
	Direction   string    `bson:"direction"`
	Account     string    `bson:"account"`
	Debit       string    `bson:"debit"`
	Credit      string    `bson:"credit"`
	CreatedAt   time.Time `bson:"created_at"`
}

// EntryRepository implements the ledger.Repository interface for MongoDB
type EntryRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewEntryRepository creates a new MongoDB ledger entry repository
func NewEntryRepository(logger *slog.Logger, db *mongo.Database) ledger.Repository {
	return &EntryRepository{
		db:     db,
		logger: logger,
	}
}

// Insert stores a new ledger entry. The repository assigns the unique id;
// a caller-supplied id is ignored.
func (r *EntryRepository) Insert(ctx context.Context, entry *ledger.Entry) error {
	collection := r.db.Collection(EntryCollectionName)

	entry.ID = uuid.New()

	_, err := collection.InsertOne(ctx, toDocument(entry))
	if err != nil {
		r.logger.Error("Failed to insert ledger entry",
			"entry_id", entry.ID.String(),
			"user_id", entry.UserID.String(),
			"error", err)
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	return nil
}

// GetByID retrieves a ledger entry by its store-assigned id.
// Returns ErrEntryNotFound if no entry exists under it.
func (r *EntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	collection := r.db.Collection(EntryCollectionName)

	filter := bson.M{"_id": id.String()}
	var doc entryDocument
	err := collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ledger.ErrEntryNotFound{EntryID: id}
		}
		r.logger.Error("Failed to get ledger entry",
			"entry_id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	return fromDocument(&doc)
}

// GetByUserID retrieves all ledger entries owned by the user, oldest first
// so display order matches insertion order.
func (r *EntryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*ledger.Entry, error) {
	collection := r.db.Collection(EntryCollectionName)

	filter := bson.M{"user_id": userID.String()}
	opts := options.Find().SetSort(bson.M{"created_at": 1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get ledger entries",
			"user_id", userID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []entryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode ledger entries",
			"user_id", userID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode ledger entries: %w", err)
	}

	entries := make([]*ledger.Entry, 0, len(docs))
	for i := range docs {
		entry, err := fromDocument(&docs[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Update replaces the stored entry, matching both id and owner so a user
// can never overwrite another user's entry.
func (r *EntryRepository) Update(ctx context.Context, entry *ledger.Entry) error {
	collection := r.db.Collection(EntryCollectionName)

	filter := bson.M{"_id": entry.ID.String(), "user_id": entry.UserID.String()}
	result, err := collection.ReplaceOne(ctx, filter, toDocument(entry))
	if err != nil {
		r.logger.Error("Failed to update ledger entry",
			"entry_id", entry.ID.String(),
			"error", err)
		return fmt.Errorf("failed to update ledger entry: %w", err)
	}

	if result.MatchedCount == 0 {
		return ledger.ErrEntryNotFound{EntryID: entry.ID}
	}

	return nil
}

// Delete removes an entry by id, scoped to the owning user in the filter
// itself. A foreign-owned id reports not-found rather than deleting.
func (r *EntryRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	collection := r.db.Collection(EntryCollectionName)

	filter := bson.M{"_id": id.String(), "user_id": userID.String()}
	result, err := collection.DeleteOne(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to delete ledger entry",
			"entry_id", id.String(),
			"user_id", userID.String(),
			"error", err)
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}

	if result.DeletedCount == 0 {
		return ledger.ErrEntryNotFound{EntryID: id}
	}

	return nil
}

func toDocument(entry *ledger.Entry) *entryDocument {
	return &entryDocument{
		ID:          entry.ID.String(),
		UserID:      entry.UserID.String(),
		Date:        entry.Date,
		Description: entry.Description,
		Amount:      entry.Amount.String(),
		Direction:   string(entry.Direction),
		Account:     string(entry.Account),
		Debit:       entry.Debit.String(),
		Credit:      entry.Credit.String(),
		CreatedAt:   entry.CreatedAt,
	}
}

func fromDocument(doc *entryDocument) (*ledger.Entry, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid entry id %q: %w", doc.ID, err)
	}
	userID, err := uuid.Parse(doc.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", doc.UserID, err)
	}
	amount, err := decimal.NewFromString(doc.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", doc.Amount, err)
	}
	debit, err := decimal.NewFromString(doc.Debit)
	if err != nil {
		return nil, fmt.Errorf("invalid debit %q: %w", doc.Debit, err)
	}
	credit, err := decimal.NewFromString(doc.Credit)
	if err != nil {
		return nil, fmt.Errorf("invalid credit %q: %w", doc.Credit, err)
	}

	return &ledger.Entry{
		ID:          id,
		UserID:      userID,
		Date:        doc.Date,
		Description: doc.Description,
		Amount:      amount,
		Direction:   accounting.Direction(doc.Direction),
		Account:     accounting.Account(doc.Account),
		Debit:       debit,
		Credit:      credit,
		CreatedAt:   doc.CreatedAt,
	}, nil
}
