package bridge

import (
	"sort"
	"strconv"
	"sync"

	"goteleportbridge/types"

	"github.com/google/uuid"
)

// MemoryStore is a map-backed Store for tests and single-node development.
// Records are copied on the way in and out so callers never alias stored
// state.
type MemoryStore struct {
	mu sync.Mutex

	stats    *types.Stats
	oracles  map[string]bool
	deposits map[string]*types.Deposit

	receipts      map[uint64]*types.Receipt
	receiptByRef  map[string]uint64
	receiptSeq    uint64
	teleports     map[uint64]*types.Teleport
	teleportSeq   uint64
	transfers     map[string]*types.OutgoingTransfer
	transferOrder []string
	seenTx        map[string]bool
	cursor        string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		oracles:      map[string]bool{},
		deposits:     map[string]*types.Deposit{},
		receipts:     map[uint64]*types.Receipt{},
		receiptByRef: map[string]uint64{},
		teleports:    map[uint64]*types.Teleport{},
		transfers:    map[string]*types.OutgoingTransfer{},
		seenTx:       map[string]bool{},
	}
}

func refKey(ref string, chainID int) string {
	return ref + "/" + strconv.Itoa(chainID)
}

func copyStats(s *types.Stats) *types.Stats {
	c := *s
	c.Chains = append([]types.Chain(nil), s.Chains...)
	return &c
}

func copyReceipt(r *types.Receipt) *types.Receipt {
	c := *r
	c.Approvers = append([]string(nil), r.Approvers...)
	return &c
}

func copyTeleport(t *types.Teleport) *types.Teleport {
	c := *t
	c.Oracles = append([]string(nil), t.Oracles...)
	c.Signatures = append([]string(nil), t.Signatures...)
	return &c
}

func (m *MemoryStore) GetStats() (*types.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stats == nil {
		return nil, nil
	}
	return copyStats(m.stats), nil
}

func (m *MemoryStore) PutStats(s *types.Stats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = copyStats(s)
	return nil
}

func (m *MemoryStore) Oracles() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.oracles))
	for o := range m.oracles {
		out = append(out, o)
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemoryStore) HasOracle(account string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.oracles[account], nil
}

func (m *MemoryStore) AddOracle(account string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.oracles[account] = true
	return nil
}

func (m *MemoryStore) RemoveOracle(account string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.oracles, account)
	return nil
}

func (m *MemoryStore) GetDeposit(account string) (*types.Deposit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.deposits[account]
	if !ok {
		return nil, nil
	}
	c := *d
	return &c, nil
}

func (m *MemoryStore) PutDeposit(d *types.Deposit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *d
	m.deposits[d.Account] = &c
	return nil
}

func (m *MemoryStore) CreditDeposit(d *types.Deposit, txID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *d
	m.deposits[d.Account] = &c
	if txID != "" {
		m.seenTx[txID] = true
	}
	return nil
}

func (m *MemoryStore) RemoveDeposit(account string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.deposits, account)
	return nil
}

func (m *MemoryStore) Deposits() ([]*types.Deposit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	accounts := make([]string, 0, len(m.deposits))
	for a := range m.deposits {
		accounts = append(accounts, a)
	}
	sort.Strings(accounts)
	out := make([]*types.Deposit, 0, len(accounts))
	for _, a := range accounts {
		c := *m.deposits[a]
		out = append(out, &c)
	}
	return out, nil
}

func (m *MemoryStore) NextReceiptID() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.receiptSeq
	m.receiptSeq++
	return id, nil
}

func (m *MemoryStore) GetReceipt(id uint64) (*types.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.receipts[id]
	if !ok {
		return nil, nil
	}
	return copyReceipt(r), nil
}

func (m *MemoryStore) FindReceipt(ref string, chainID int) (*types.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.receiptByRef[refKey(ref, chainID)]
	if !ok {
		return nil, nil
	}
	r, ok := m.receipts[id]
	if !ok {
		return nil, nil
	}
	return copyReceipt(r), nil
}

func (m *MemoryStore) PutReceipt(r *types.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts[r.ID] = copyReceipt(r)
	m.receiptByRef[refKey(r.Ref, r.ChainID)] = r.ID
	return nil
}

func (m *MemoryStore) CompleteReceipt(r *types.Receipt, stats *types.Stats, transfer *types.OutgoingTransfer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts[r.ID] = copyReceipt(r)
	m.receiptByRef[refKey(r.Ref, r.ChainID)] = r.ID
	m.stats = copyStats(stats)
	if transfer != nil {
		if transfer.ID == "" {
			transfer.ID = uuid.New().String()
		}
		c := *transfer
		m.transfers[transfer.ID] = &c
		m.transferOrder = append(m.transferOrder, transfer.ID)
	}
	return nil
}

func (m *MemoryStore) RemoveReceipt(id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.receipts[id]; ok {
		delete(m.receiptByRef, refKey(r.Ref, r.ChainID))
		delete(m.receipts, id)
	}
	return nil
}

func (m *MemoryStore) Receipts() ([]*types.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]uint64, 0, len(m.receipts))
	for id := range m.receipts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*types.Receipt, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyReceipt(m.receipts[id]))
	}
	return out, nil
}

func (m *MemoryStore) NextTeleportID() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.teleportSeq
	m.teleportSeq++
	return id, nil
}

func (m *MemoryStore) GetTeleport(id uint64) (*types.Teleport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.teleports[id]
	if !ok {
		return nil, nil
	}
	return copyTeleport(t), nil
}

func (m *MemoryStore) PutTeleport(t *types.Teleport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teleports[t.ID] = copyTeleport(t)
	return nil
}

func (m *MemoryStore) RemoveTeleport(id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.teleports, id)
	return nil
}

func (m *MemoryStore) Teleports() ([]*types.Teleport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]uint64, 0, len(m.teleports))
	for id := range m.teleports {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*types.Teleport, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyTeleport(m.teleports[id]))
	}
	return out, nil
}

func (m *MemoryStore) EnqueueTransfer(t *types.OutgoingTransfer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	c := *t
	m.transfers[t.ID] = &c
	m.transferOrder = append(m.transferOrder, t.ID)
	return nil
}

func (m *MemoryStore) TransfersByStatus(status string) ([]*types.OutgoingTransfer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*types.OutgoingTransfer{}
	for _, id := range m.transferOrder {
		t := m.transfers[id]
		if t != nil && t.Status == status {
			c := *t
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *MemoryStore) UpdateTransfer(t *types.OutgoingTransfer, prevStatus string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *t
	m.transfers[t.ID] = &c
	return nil
}

func (m *MemoryStore) HasSeenTransfer(txID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seenTx[txID], nil
}

func (m *MemoryStore) GetScanCursor() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor, nil
}

func (m *MemoryStore) SetScanCursor(cursor string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor = cursor
	return nil
}
