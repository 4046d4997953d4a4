package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"goteleportbridge/config"
	"goteleportbridge/types"

	"github.com/gomodule/redigo/redis"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Store persists every bridge table in Redis: one JSON record per row,
// plain SETs as primary-key indexes and a dedicated key as the secondary
// (ref, chain) receipt index.
type Store struct {
	pool *redis.Pool
}

func timeoutDialOptions() []redis.DialOption {
	return []redis.DialOption{
		redis.DialConnectTimeout(5 * time.Second),
		redis.DialReadTimeout(5 * time.Second),
		redis.DialWriteTimeout(5 * time.Second),
	}
}

// NewStore connects to the configured Redis. Without persistence the
// bridge must not run, so a failed ping is fatal.
func NewStore() *Store {
	redisAddr := fmt.Sprintf("%s:%d", config.Config.Server.RedisHost, config.Config.Server.RedisPort)
	s := &Store{
		pool: &redis.Pool{
			MaxIdle: 5,
			Dial:    func() (redis.Conn, error) { return redis.Dial("tcp", redisAddr, timeoutDialOptions()...) },
		},
	}

	conn := s.pool.Get()
	defer conn.Close()
	if _, err := conn.Do("PING"); err != nil {
		log.Fatalf("Error connecting to Redis at %s: %s", redisAddr, err.Error())
	}

	return s
}

const (
	keyStats         = "bridge:stats"
	keyOracles       = "bridge:oracles"
	keyDeposits      = "bridge:deposits"
	keyReceipts      = "bridge:receipts"
	keyTeleports     = "bridge:teleports"
	seqReceipts      = "bridge:seq:receipts"
	seqTeleports     = "bridge:seq:teleports"
	keyScanCursor    = "bridge:scancursor"
	keySeenTx        = "bridge:seentx"
	depositKeyPrefix = "deposit:"
)

func receiptKey(id uint64) string            { return fmt.Sprintf("receipt:%d", id) }
func receiptRefKey(ref string, c int) string { return fmt.Sprintf("receiptref:%d:%s", c, ref) }
func teleportKey(id uint64) string           { return fmt.Sprintf("teleport:%d", id) }
func transferKey(status, id string) string   { return fmt.Sprintf("transfer:%s:%s", status, id) }

func (s *Store) getJSON(key string, out interface{}) (bool, error) {
	conn := s.pool.Get()
	defer conn.Close()

	data, err := redis.Bytes(conn.Do("GET", key))
	if errors.Is(err, redis.ErrNil) {
		return false, nil
	}
	if err != nil {
		log.Printf("error Redis GET: %s", err.Error())
		return false, err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) setJSON(key string, v interface{}) error {
	conn := s.pool.Get()
	defer conn.Close()

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cannot marshal record to JSON: %s", err.Error())
	}

	if _, err := conn.Do("SET", key, data); err != nil {
		log.Printf("error Redis SET: %s", err.Error())
		return err
	}
	return nil
}

// scanSet walks a whole SET with SSCAN; row counts stay small because
// completed rows get pruned.
func (s *Store) scanSet(key string) ([]string, error) {
	conn := s.pool.Get()
	defer conn.Close()

	var members []string
	var cursor int64
	for {
		values, err := redis.Values(conn.Do("SSCAN", key, cursor))
		if err != nil {
			return nil, err
		}

		var batch []string
		if _, err = redis.Scan(values, &cursor, &batch); err != nil {
			return nil, err
		}
		members = append(members, batch...)

		if cursor == 0 {
			break
		}
	}
	return members, nil
}

func (s *Store) GetStats() (*types.Stats, error) {
	var stats types.Stats
	ok, err := s.getJSON(keyStats, &stats)
	if err != nil || !ok {
		return nil, err
	}
	return &stats, nil
}

func (s *Store) PutStats(stats *types.Stats) error {
	if stats == nil {
		return errors.New("null object to store")
	}
	return s.setJSON(keyStats, stats)
}

func (s *Store) Oracles() ([]string, error) {
	oracles, err := s.scanSet(keyOracles)
	if err != nil {
		return nil, err
	}
	sort.Strings(oracles)
	return oracles, nil
}

func (s *Store) HasOracle(account string) (bool, error) {
	conn := s.pool.Get()
	defer conn.Close()
	return redis.Bool(conn.Do("SISMEMBER", keyOracles, account))
}

func (s *Store) AddOracle(account string) error {
	conn := s.pool.Get()
	defer conn.Close()
	_, err := conn.Do("SADD", keyOracles, account)
	return err
}

func (s *Store) RemoveOracle(account string) error {
	conn := s.pool.Get()
	defer conn.Close()
	_, err := conn.Do("SREM", keyOracles, account)
	return err
}

func (s *Store) GetDeposit(account string) (*types.Deposit, error) {
	var d types.Deposit
	ok, err := s.getJSON(depositKeyPrefix+account, &d)
	if err != nil || !ok {
		return nil, err
	}
	return &d, nil
}

func (s *Store) PutDeposit(d *types.Deposit) error {
	if d == nil {
		return errors.New("null object to store")
	}
	if err := s.setJSON(depositKeyPrefix+d.Account, d); err != nil {
		return err
	}

	conn := s.pool.Get()
	defer conn.Close()
	_, err := conn.Do("SADD", keyDeposits, d.Account)
	return err
}

// CreditDeposit writes the deposit and marks the tx id seen in one
// MULTI/EXEC, so a partial failure leaves the tx id uncredited and safe to
// re-deliver.
func (s *Store) CreditDeposit(d *types.Deposit, txID string) error {
	if d == nil {
		return errors.New("null object to store")
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("cannot marshal record to JSON: %s", err.Error())
	}

	conn := s.pool.Get()
	defer conn.Close()

	conn.Send("MULTI")
	conn.Send("SET", depositKeyPrefix+d.Account, data)
	conn.Send("SADD", keyDeposits, d.Account)
	if txID != "" {
		conn.Send("SADD", keySeenTx, txID)
	}
	if _, err := conn.Do("EXEC"); err != nil {
		log.Printf("error Redis EXEC: %s", err.Error())
		return err
	}
	return nil
}

func (s *Store) RemoveDeposit(account string) error {
	conn := s.pool.Get()
	defer conn.Close()

	if _, err := conn.Do("SREM", keyDeposits, account); err != nil {
		return err
	}
	_, err := conn.Do("DEL", depositKeyPrefix+account)
	return err
}

func (s *Store) Deposits() ([]*types.Deposit, error) {
	accounts, err := s.scanSet(keyDeposits)
	if err != nil {
		return nil, err
	}
	sort.Strings(accounts)

	deposits := make([]*types.Deposit, 0, len(accounts))
	for _, account := range accounts {
		d, err := s.GetDeposit(account)
		if err != nil {
			return nil, err
		}
		if d != nil {
			deposits = append(deposits, d)
		}
	}
	return deposits, nil
}

func (s *Store) nextID(seqKey string) (uint64, error) {
	conn := s.pool.Get()
	defer conn.Close()

	// INCR yields 1 on first use; table ids start at 0
	n, err := redis.Int64(conn.Do("INCR", seqKey))
	if err != nil {
		log.Printf("error Redis INCR: %s", err.Error())
		return 0, err
	}
	return uint64(n - 1), nil
}

func (s *Store) NextReceiptID() (uint64, error) {
	return s.nextID(seqReceipts)
}

func (s *Store) GetReceipt(id uint64) (*types.Receipt, error) {
	var r types.Receipt
	ok, err := s.getJSON(receiptKey(id), &r)
	if err != nil || !ok {
		return nil, err
	}
	return &r, nil
}

func (s *Store) FindReceipt(ref string, chainID int) (*types.Receipt, error) {
	conn := s.pool.Get()
	defer conn.Close()

	idStr, err := redis.String(conn.Do("GET", receiptRefKey(ref, chainID)))
	if errors.Is(err, redis.ErrNil) {
		return nil, nil
	}
	if err != nil {
		log.Printf("error Redis GET: %s", err.Error())
		return nil, err
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return nil, err
	}
	return s.GetReceipt(id)
}

func (s *Store) PutReceipt(r *types.Receipt) error {
	if r == nil {
		return errors.New("null object to store")
	}
	if err := s.setJSON(receiptKey(r.ID), r); err != nil {
		return err
	}

	conn := s.pool.Get()
	defer conn.Close()

	if _, err := conn.Do("SADD", keyReceipts, strconv.FormatUint(r.ID, 10)); err != nil {
		return err
	}
	_, err := conn.Do("SET", receiptRefKey(r.Ref, r.ChainID), strconv.FormatUint(r.ID, 10))
	return err
}

// CompleteReceipt commits the threshold transition atomically: the
// completed receipt, the grown fee pool and the queued payout either all
// land or none do.
func (s *Store) CompleteReceipt(r *types.Receipt, stats *types.Stats, transfer *types.OutgoingTransfer) error {
	if r == nil || stats == nil {
		return errors.New("null object to store")
	}
	receiptData, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("cannot marshal record to JSON: %s", err.Error())
	}
	statsData, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("cannot marshal record to JSON: %s", err.Error())
	}

	var transferData []byte
	if transfer != nil {
		if transfer.ID == "" {
			transfer.ID = uuid.New().String()
		}
		transferData, err = json.Marshal(transfer)
		if err != nil {
			return fmt.Errorf("cannot marshal record to JSON: %s", err.Error())
		}
	}

	conn := s.pool.Get()
	defer conn.Close()

	conn.Send("MULTI")
	conn.Send("SET", receiptKey(r.ID), receiptData)
	conn.Send("SADD", keyReceipts, strconv.FormatUint(r.ID, 10))
	conn.Send("SET", receiptRefKey(r.Ref, r.ChainID), strconv.FormatUint(r.ID, 10))
	conn.Send("SET", keyStats, statsData)
	if transfer != nil {
		conn.Send("SET", transferKey(transfer.Status, transfer.ID), transferData)
		conn.Send("SADD", config.TransferStatusSets[transfer.Status], transferKey(transfer.Status, transfer.ID))
	}
	if _, err := conn.Do("EXEC"); err != nil {
		log.Printf("error Redis EXEC: %s", err.Error())
		return err
	}
	return nil
}

func (s *Store) RemoveReceipt(id uint64) error {
	r, err := s.GetReceipt(id)
	if err != nil {
		return err
	}
	if r == nil {
		return nil
	}

	conn := s.pool.Get()
	defer conn.Close()

	if _, err := conn.Do("SREM", keyReceipts, strconv.FormatUint(id, 10)); err != nil {
		return err
	}
	if _, err := conn.Do("DEL", receiptRefKey(r.Ref, r.ChainID)); err != nil {
		return err
	}
	_, err = conn.Do("DEL", receiptKey(id))
	return err
}

func (s *Store) Receipts() ([]*types.Receipt, error) {
	members, err := s.scanSet(keyReceipts)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	receipts := make([]*types.Receipt, 0, len(ids))
	for _, id := range ids {
		r, err := s.GetReceipt(id)
		if err != nil {
			return nil, err
		}
		if r != nil {
			receipts = append(receipts, r)
		}
	}
	return receipts, nil
}

func (s *Store) NextTeleportID() (uint64, error) {
	return s.nextID(seqTeleports)
}

func (s *Store) GetTeleport(id uint64) (*types.Teleport, error) {
	var t types.Teleport
	ok, err := s.getJSON(teleportKey(id), &t)
	if err != nil || !ok {
		return nil, err
	}
	return &t, nil
}

func (s *Store) PutTeleport(t *types.Teleport) error {
	if t == nil {
		return errors.New("null object to store")
	}
	if err := s.setJSON(teleportKey(t.ID), t); err != nil {
		return err
	}

	conn := s.pool.Get()
	defer conn.Close()
	_, err := conn.Do("SADD", keyTeleports, strconv.FormatUint(t.ID, 10))
	return err
}

func (s *Store) RemoveTeleport(id uint64) error {
	conn := s.pool.Get()
	defer conn.Close()

	if _, err := conn.Do("SREM", keyTeleports, strconv.FormatUint(id, 10)); err != nil {
		return err
	}
	_, err := conn.Do("DEL", teleportKey(id))
	return err
}

func (s *Store) Teleports() ([]*types.Teleport, error) {
	members, err := s.scanSet(keyTeleports)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	teleports := make([]*types.Teleport, 0, len(ids))
	for _, id := range ids {
		t, err := s.GetTeleport(id)
		if err != nil {
			return nil, err
		}
		if t != nil {
			teleports = append(teleports, t)
		}
	}
	return teleports, nil
}

func (s *Store) EnqueueTransfer(t *types.OutgoingTransfer) error {
	if t == nil {
		return errors.New("null object to store")
	}
	if t.Status == "" {
		return errors.New("outgoing transfer cannot have empty status")
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}

	if err := s.setJSON(transferKey(t.Status, t.ID), t); err != nil {
		return err
	}

	conn := s.pool.Get()
	defer conn.Close()
	_, err := conn.Do("SADD", config.TransferStatusSets[t.Status], transferKey(t.Status, t.ID))
	return err
}

// UpdateTransfer moves a record between status sets. The record key
// embeds the status, so a transition rewrites the key.
func (s *Store) UpdateTransfer(t *types.OutgoingTransfer, prevStatus string) error {
	if t == nil {
		return errors.New("null object to store")
	}
	if t.Status == "" {
		return errors.New("outgoing transfer cannot have empty status")
	}

	conn := s.pool.Get()
	defer conn.Close()

	if prevStatus != "" && prevStatus != t.Status {
		if _, err := conn.Do("SREM", config.TransferStatusSets[prevStatus], transferKey(prevStatus, t.ID)); err != nil {
			log.Printf("error Redis SREM: %s", err.Error())
			return err
		}
		if _, err := conn.Do("DEL", transferKey(prevStatus, t.ID)); err != nil {
			log.Printf("error Redis DEL: %s", err.Error())
			return err
		}
	}

	if err := s.setJSON(transferKey(t.Status, t.ID), t); err != nil {
		return err
	}
	_, err := conn.Do("SADD", config.TransferStatusSets[t.Status], transferKey(t.Status, t.ID))
	return err
}

func (s *Store) TransfersByStatus(status string) ([]*types.OutgoingTransfer, error) {
	if _, ok := config.TransferStatusSets[status]; !ok {
		return nil, errors.New("redis key not found for status")
	}

	keys, err := s.scanSet(config.TransferStatusSets[status])
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)

	transfers := make([]*types.OutgoingTransfer, 0, len(keys))
	for _, key := range keys {
		var t types.OutgoingTransfer
		ok, err := s.getJSON(key, &t)
		if err != nil {
			return nil, err
		}
		if ok && t.Status == status {
			transfers = append(transfers, &t)
		}
	}
	return transfers, nil
}

func (s *Store) HasSeenTransfer(txID string) (bool, error) {
	conn := s.pool.Get()
	defer conn.Close()
	return redis.Bool(conn.Do("SISMEMBER", keySeenTx, txID))
}

func (s *Store) GetScanCursor() (string, error) {
	conn := s.pool.Get()
	defer conn.Close()

	cursor, err := redis.String(conn.Do("GET", keyScanCursor))
	if errors.Is(err, redis.ErrNil) {
		return "", nil
	}
	if err != nil {
		log.Printf("error Redis GET: %s", err.Error())
		return "", err
	}
	return cursor, nil
}

func (s *Store) SetScanCursor(cursor string) error {
	conn := s.pool.Get()
	defer conn.Close()

	if _, err := conn.Do("SET", keyScanCursor, cursor); err != nil {
		log.Printf("error Redis SET: %s", err.Error())
		return err
	}
	return nil
}
