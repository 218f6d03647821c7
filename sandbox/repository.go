package sandbox

import (
    "context"
    "fmt"
    "sync"

    "github.com/alovak/directplus/internal/wire"
    "github.com/alovak/directplus/sandbox/models"
)

var ErrNotFound = fmt.Errorf("not found")

var ErrConflict = fmt.Errorf("conflict")

// Repository keeps profiles and transactions in memory.
type Repository struct {
    mu           sync.RWMutex
    profiles     map[string]models.Profile
    transactions map[string]models.Transaction
    seq          int64
}

func NewRepository() *Repository {
    return &Repository{
        profiles:     make(map[string]models.Profile),
        transactions: make(map[string]models.Transaction),
    }
}

func (r *Repository) CreateProfile(p models.Profile) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    if _, ok := r.profiles[p.Reference]; ok {
        return fmt.Errorf("subscriber %s: %w", p.Reference, ErrConflict)
    }
    r.profiles[p.Reference] = p
    return nil
}

func (r *Repository) GetProfile(reference string) (models.Profile, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    p, ok := r.profiles[reference]
    if !ok {
        return models.Profile{}, fmt.Errorf("subscriber %s: %w", reference, ErrNotFound)
    }
    return p, nil
}

func (r *Repository) UpdateProfile(p models.Profile) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    if _, ok := r.profiles[p.Reference]; !ok {
        return fmt.Errorf("subscriber %s: %w", p.Reference, ErrNotFound)
    }
    r.profiles[p.Reference] = p
    return nil
}

func (r *Repository) DeleteProfile(reference string) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    if _, ok := r.profiles[reference]; !ok {
        return fmt.Errorf("subscriber %s: %w", reference, ErrNotFound)
    }
    delete(r.profiles, reference)
    return nil
}

// NextNumbers allocates a call number and a transaction number.
func (r *Repository) NextNumbers() (callNumber, transactionNumber string) {
    r.mu.Lock()
    r.seq++
    seq := r.seq
    r.mu.Unlock()

    // seq stays far below ten digits for the lifetime of a sandbox
    callNumber, _ = wire.Numeric(seq, 10)
    transactionNumber, _ = wire.Numeric(seq+5_000_000, 10)
    return callNumber, transactionNumber
}

func transactionKey(callNumber, transactionNumber string) string {
    return callNumber + transactionNumber
}

func (r *Repository) CreateTransaction(tx models.Transaction) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    key := transactionKey(tx.CallNumber, tx.TransactionNumber)
    if _, ok := r.transactions[key]; ok {
        return fmt.Errorf("transaction %s: %w", key, ErrConflict)
    }
    r.transactions[key] = tx
    return nil
}

func (r *Repository) GetTransaction(callNumber, transactionNumber string) (models.Transaction, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    tx, ok := r.transactions[transactionKey(callNumber, transactionNumber)]
    if !ok {
        return models.Transaction{}, fmt.Errorf("transaction %s/%s: %w", callNumber, transactionNumber, ErrNotFound)
    }
    return tx, nil
}

func (r *Repository) UpdateTransactionStatus(callNumber, transactionNumber string, status models.TransactionStatus) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    key := transactionKey(callNumber, transactionNumber)
    tx, ok := r.transactions[key]
    if !ok {
        return fmt.Errorf("transaction %s/%s: %w", callNumber, transactionNumber, ErrNotFound)
    }
    tx.Status = status
    r.transactions[key] = tx
    return nil
}

// Ping reports readiness. The memory store is always ready unless ctx is done.
func (r *Repository) Ping(ctx context.Context) error {
    return ctx.Err()
}
