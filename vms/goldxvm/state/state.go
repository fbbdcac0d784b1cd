// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state persists the GOLDX VM components and the journal of events
// they emitted. Ledger accounts are stored one record per address so an
// operation only rewrites the accounts it touched.
package state

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/luxfi/cache"
	"github.com/luxfi/cache/lru"
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"

	"github.com/CREESTL/FuseG/utils/compression"
	"github.com/CREESTL/FuseG/vms/goldxvm/emission"
	"github.com/CREESTL/FuseG/vms/goldxvm/events"
	"github.com/CREESTL/FuseG/vms/goldxvm/ledger"
	"github.com/CREESTL/FuseG/vms/goldxvm/treasury"
)

const (
	eventCacheSize = 1024
	// maxSnapshotSize bounds a single decompressed component snapshot.
	maxSnapshotSize = 256 * 1024 * 1024
)

var (
	ErrNotInitialized = errors.New("state not initialized")
	ErrStateCorrupted = errors.New("state corrupted")

	singletonPrefix = []byte("singleton")
	accountPrefix   = []byte("account")
	journalPrefix   = []byte("journal")

	genesisKey  = []byte("genesis")
	ledgerKey   = []byte("ledger")
	emissionKey = []byte("emission")
	treasuryKey = []byte("treasury")
	heightKey   = []byte("height")
)

// Record is one journaled event. Height is the operation that emitted it and
// Index its position within that operation.
type Record struct {
	Height uint64          `json:"height"`
	Index  uint32          `json:"index"`
	Name   string          `json:"name"`
	Event  json.RawMessage `json:"event"`
}

// State reads and writes the VM's components. Callers wrap the database in a
// versiondb to get atomic commits. Component snapshots are stored zstd
// compressed and journal reads are cached per height.
type State struct {
	singletonDB database.Database
	accountDB   database.Database
	journalDB   database.Database

	compressor compression.Compressor
	eventCache cache.Cacher[uint64, []Record]
}

func New(db database.Database) (*State, error) {
	compressor, err := compression.NewZstdCompressor(maxSnapshotSize)
	if err != nil {
		return nil, err
	}
	return &State{
		singletonDB: prefixdb.New(singletonPrefix, db),
		accountDB:   prefixdb.New(accountPrefix, db),
		journalDB:   prefixdb.New(journalPrefix, db),
		compressor:  compressor,
		eventCache:  lru.NewCache[uint64, []Record](eventCacheSize),
	}, nil
}

// IsInitialized reports whether a genesis has been stored.
func (s *State) IsInitialized() (bool, error) {
	return s.singletonDB.Has(genesisKey)
}

func (s *State) PutGenesis(genesisBytes []byte) error {
	return s.singletonDB.Put(genesisKey, genesisBytes)
}

func (s *State) GetGenesis() ([]byte, error) {
	b, err := s.singletonDB.Get(genesisKey)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotInitialized
	}
	return b, err
}

// Height is the number of operations applied so far.
func (s *State) Height() (uint64, error) {
	height, err := database.GetUInt64(s.singletonDB, heightKey)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	return height, err
}

func (s *State) SetHeight(height uint64) error {
	return database.PutUInt64(s.singletonDB, heightKey, height)
}

// PutLedger writes the ledger globals and the given accounts. Empty accounts
// are deleted; accounts not in the snapshot are left as they are.
func (s *State) PutLedger(snapshot ledger.Snapshot) error {
	if err := s.putSnapshot(ledgerKey, snapshot.Globals); err != nil {
		return err
	}
	for _, account := range snapshot.Accounts {
		key := account.Address.Bytes()
		if account.Empty() {
			if err := s.accountDB.Delete(key); err != nil {
				return err
			}
			continue
		}
		if err := put(s.accountDB, key, account); err != nil {
			return err
		}
	}
	return nil
}

// GetLedger reads the globals and every stored account, sorted by address.
func (s *State) GetLedger() (ledger.Snapshot, error) {
	globals, err := getSnapshot[ledger.Globals](s, ledgerKey)
	if err != nil {
		return ledger.Snapshot{}, err
	}

	it := s.accountDB.NewIterator()
	defer it.Release()

	snapshot := ledger.Snapshot{Globals: globals}
	for it.Next() {
		var account ledger.Account
		if err := json.Unmarshal(it.Value(), &account); err != nil {
			return ledger.Snapshot{}, fmt.Errorf("%w: account %x: %w", ErrStateCorrupted, it.Key(), err)
		}
		snapshot.Accounts = append(snapshot.Accounts, account)
	}
	return snapshot, it.Error()
}

func (s *State) PutEmission(snapshot emission.Snapshot) error {
	return s.putSnapshot(emissionKey, snapshot)
}

func (s *State) GetEmission() (emission.Snapshot, error) {
	return getSnapshot[emission.Snapshot](s, emissionKey)
}

func (s *State) PutTreasury(snapshot treasury.Snapshot) error {
	return s.putSnapshot(treasuryKey, snapshot)
}

func (s *State) GetTreasury() (treasury.Snapshot, error) {
	return getSnapshot[treasury.Snapshot](s, treasuryKey)
}

// PutEvents journals evs under height, in order.
func (s *State) PutEvents(height uint64, evs []events.Event) error {
	s.eventCache.Evict(height)
	for i, e := range evs {
		eventBytes, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal %s event: %w", e.Name(), err)
		}
		record := Record{
			Height: height,
			Index:  uint32(i),
			Name:   e.Name(),
			Event:  eventBytes,
		}
		if err := put(s.journalDB, journalKey(height, uint32(i)), record); err != nil {
			return err
		}
	}
	return nil
}

// GetEvents returns the records journaled under height.
func (s *State) GetEvents(height uint64) ([]Record, error) {
	if records, ok := s.eventCache.Get(height); ok {
		return records, nil
	}

	prefix := binary.BigEndian.AppendUint64(nil, height)
	it := s.journalDB.NewIteratorWithPrefix(prefix)
	defer it.Release()

	var records []Record
	for it.Next() {
		var record Record
		if err := json.Unmarshal(it.Value(), &record); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStateCorrupted, err)
		}
		records = append(records, record)
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	s.eventCache.Put(height, records)
	return records, nil
}

// GetEventRange returns the records journaled under heights [start, end).
func (s *State) GetEventRange(start, end uint64) ([]Record, error) {
	var records []Record
	for height := start; height < end; height++ {
		recs, err := s.GetEvents(height)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

func journalKey(height uint64, index uint32) []byte {
	key := make([]byte, 0, 12)
	key = binary.BigEndian.AppendUint64(key, height)
	return binary.BigEndian.AppendUint32(key, index)
}

func (s *State) putSnapshot(key []byte, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	compressed, err := s.compressor.Compress(b)
	if err != nil {
		return fmt.Errorf("failed to compress %s: %w", key, err)
	}
	return s.singletonDB.Put(key, compressed)
}

func getSnapshot[T any](s *State, key []byte) (T, error) {
	var v T
	compressed, err := s.singletonDB.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return v, ErrNotInitialized
	}
	if err != nil {
		return v, err
	}
	b, err := s.compressor.Decompress(compressed)
	if err != nil {
		return v, fmt.Errorf("%w: %s: %w", ErrStateCorrupted, key, err)
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %w", ErrStateCorrupted, key, err)
	}
	return v, nil
}

func put(db database.KeyValueWriter, key []byte, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return db.Put(key, b)
}
