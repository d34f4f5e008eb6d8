package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SettlementAdapter is the contract every settlement backend implements,
// whether it posts to the internal reference ledger, an external chain,
// or a bank rail.
type SettlementAdapter interface {
	Initiate(pmID uuid.UUID, amount Amount, sender, receiver DID) (uuid.UUID, error)
	Confirm(id uuid.UUID) (SettlementReceipt, error)
	Rollback(id uuid.UUID) error
	GetStatus(id uuid.UUID) (SettlementStatus, error)
	EstimateCost(amount Amount) (Amount, error)
	EstimateLatency(amount Amount) (time.Duration, error)
	SupportedCurrencies() map[string]bool
	AdapterID() string
}

// SettlementManager dispatches settlement operations to a named adapter.
// Every operation is scoped by adapter id; settlement_id uniqueness is
// the caller's responsibility (ids are minted globally unique, see
// DESIGN.md's Open Question #1 resolution).
type SettlementManager struct {
	mu       sync.RWMutex
	adapters map[string]SettlementAdapter
}

// NewSettlementManager returns a manager with no adapters registered.
func NewSettlementManager() *SettlementManager {
	return &SettlementManager{adapters: make(map[string]SettlementAdapter)}
}

// Register wires an adapter under its own AdapterID().
func (m *SettlementManager) Register(a SettlementAdapter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adapters[a.AdapterID()] = a
}

func (m *SettlementManager) adapter(adapterID string) (SettlementAdapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.adapters[adapterID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAdapterNotFound, adapterID)
	}
	return a, nil
}

func (m *SettlementManager) Initiate(adapterID string, pmID uuid.UUID, amount Amount, sender, receiver DID) (uuid.UUID, error) {
	a, err := m.adapter(adapterID)
	if err != nil {
		return uuid.UUID{}, err
	}
	return a.Initiate(pmID, amount, sender, receiver)
}

func (m *SettlementManager) Confirm(adapterID string, id uuid.UUID) (SettlementReceipt, error) {
	a, err := m.adapter(adapterID)
	if err != nil {
		return SettlementReceipt{}, err
	}
	return a.Confirm(id)
}

func (m *SettlementManager) Rollback(adapterID string, id uuid.UUID) error {
	a, err := m.adapter(adapterID)
	if err != nil {
		return err
	}
	return a.Rollback(id)
}

func (m *SettlementManager) GetStatus(adapterID string, id uuid.UUID) (SettlementStatus, error) {
	a, err := m.adapter(adapterID)
	if err != nil {
		return "", err
	}
	return a.GetStatus(id)
}
