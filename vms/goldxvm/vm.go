// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package goldxvm runs the GOLDX token engine: a reflection-fee ledger, an
// emission vault and a multi-signature treasury vault sharing one persistent
// state.
package goldxvm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	"github.com/CREESTL/FuseG/utils/timer/mockable"
	"github.com/CREESTL/FuseG/utils/wrappers"
	"github.com/CREESTL/FuseG/vms/goldxvm/config"
	"github.com/CREESTL/FuseG/vms/goldxvm/emission"
	"github.com/CREESTL/FuseG/vms/goldxvm/events"
	"github.com/CREESTL/FuseG/vms/goldxvm/genesis"
	"github.com/CREESTL/FuseG/vms/goldxvm/ledger"
	"github.com/CREESTL/FuseG/vms/goldxvm/metrics"
	"github.com/CREESTL/FuseG/vms/goldxvm/state"
	"github.com/CREESTL/FuseG/vms/goldxvm/treasury"

	safemath "github.com/CREESTL/FuseG/utils/math"
)

var (
	ErrNotInitialized = errors.New("vm not initialized")
	ErrShutdown       = errors.New("vm shut down")
)

// VM owns the three components and serializes every mutation. Each
// successful operation is committed atomically together with the events it
// emitted under the next height, which the operation returns. Failed
// operations leave no trace.
type VM struct {
	config.Config

	clock mockable.Clock

	mu       sync.RWMutex
	log      log.Logger
	metrics  metrics.Metrics
	baseDB   database.Database
	db       *versiondb.Database
	state    *state.State
	journal  *events.Recorder
	height   uint64
	shutdown bool

	ledger   *ledger.Ledger
	emission *emission.Vault
	treasury *treasury.Vault
}

// Initialize loads the VM from db, creating it from genesisBytes if db holds
// no state yet.
func (vm *VM) Initialize(
	_ context.Context,
	db database.Database,
	genesisBytes []byte,
	logger log.Logger,
	registry metric.Registry,
) error {
	if err := vm.Config.Verify(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	vm.log = logger
	vm.log.Info("initializing goldx vm",
		log.String("apiAddress", vm.APIAddress),
		log.String("databasePrefix", vm.DatabasePrefix),
	)

	var err error
	vm.metrics, err = metrics.New(vm.MetricsNamespace, registry)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	vm.baseDB = db
	vm.db = versiondb.New(prefixdb.New([]byte(vm.DatabasePrefix), db))
	vm.state, err = state.New(vm.db)
	if err != nil {
		return err
	}
	vm.journal = &events.Recorder{}

	initialized, err := vm.state.IsInitialized()
	if err != nil {
		return err
	}
	if initialized {
		if err := vm.load(); err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}
		vm.log.Info("loaded state",
			log.Uint64("height", vm.height),
		)
	} else {
		if err := vm.initGenesis(genesisBytes); err != nil {
			return fmt.Errorf("failed to initialize genesis: %w", err)
		}
		vm.log.Info("initialized genesis",
			log.String("totalSupply", vm.ledger.TotalSupply().String()),
		)
	}
	vm.updateMetrics()
	return nil
}

func (vm *VM) initGenesis(genesisBytes []byte) error {
	g, err := genesis.Parse(genesisBytes)
	if err != nil {
		return err
	}

	vm.ledger, err = ledger.New(g.LedgerConfig(vm.Fees, vm.ReferralCooldown), &vm.clock, vm.journal)
	if err != nil {
		return err
	}
	vm.emission, err = emission.New(g.EmissionConfig(), vm.ledger, vm.journal)
	if err != nil {
		return err
	}
	vm.treasury, err = treasury.New(g.TreasuryConfig(), vm.ledger, vm.emission, vm.journal)
	if err != nil {
		return err
	}

	errs := wrappers.Errs{}
	errs.Add(
		vm.state.PutGenesis(genesisBytes),
		vm.state.PutLedger(vm.ledger.Changes()),
		vm.state.PutEmission(vm.emission.Snapshot()),
		vm.state.PutTreasury(vm.treasury.Snapshot()),
		vm.state.SetHeight(0),
	)
	if errs.Errored() {
		vm.db.Abort()
		return errs.Err
	}
	return vm.db.Commit()
}

// load rebuilds the components from the last committed height.
func (vm *VM) load() error {
	ledgerState, err := vm.state.GetLedger()
	if err != nil {
		return err
	}
	emissionState, err := vm.state.GetEmission()
	if err != nil {
		return err
	}
	treasuryState, err := vm.state.GetTreasury()
	if err != nil {
		return err
	}
	height, err := vm.state.Height()
	if err != nil {
		return err
	}

	l, err := ledger.Restore(ledgerState, &vm.clock, vm.journal)
	if err != nil {
		return err
	}
	e, err := emission.Restore(emissionState, l, vm.journal)
	if err != nil {
		return err
	}
	t, err := treasury.Restore(treasuryState, l, e, vm.journal)
	if err != nil {
		return err
	}
	vm.ledger, vm.emission, vm.treasury, vm.height = l, e, t, height
	return nil
}

// execute runs op, commits its effects and returns the height they were
// committed at.
func (vm *VM) execute(operation string, op func() error) (uint64, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := vm.ready(); err != nil {
		return 0, err
	}

	vm.journal.Reset()
	err := op()
	if err == nil {
		err = vm.commit()
	}
	vm.metrics.MarkOperation(operation, err)
	if err != nil {
		vm.log.Debug("operation rejected",
			log.String("operation", operation),
			log.Err(err),
		)
		return 0, err
	}

	vm.log.Debug("operation applied",
		log.String("operation", operation),
		log.Uint64("height", vm.height),
		log.Int("events", len(vm.journal.Events())),
	)
	vm.updateMetrics()
	return vm.height, nil
}

// commit persists what the operation changed and its journal under the next
// height. Only the ledger accounts the operation touched are rewritten. If
// that fails the components are reloaded from the last committed height.
func (vm *VM) commit() error {
	height, err := safemath.Add(vm.height, 1)
	if err != nil {
		return err
	}

	errs := wrappers.Errs{}
	errs.Add(
		vm.state.PutLedger(vm.ledger.Changes()),
		vm.state.PutEmission(vm.emission.Snapshot()),
		vm.state.PutTreasury(vm.treasury.Snapshot()),
		vm.state.PutEvents(height, vm.journal.Events()),
		vm.state.SetHeight(height),
	)
	if !errs.Errored() {
		errs.Add(vm.db.Commit())
	}
	if !errs.Errored() {
		vm.height = height
		return nil
	}

	vm.db.Abort()
	vm.log.Error("failed to persist operation",
		log.Uint64("height", height),
		log.Err(errs.Err),
	)
	if err := vm.load(); err != nil {
		return fmt.Errorf("failed to reload after %w: %w", errs.Err, err)
	}
	return fmt.Errorf("failed to persist height %d: %w", height, errs.Err)
}

func (vm *VM) ready() error {
	switch {
	case vm.shutdown:
		return ErrShutdown
	case vm.ledger == nil:
		return ErrNotInitialized
	default:
		return nil
	}
}

func (vm *VM) updateMetrics() {
	phase, _ := vm.emission.MiningPhase()
	vm.metrics.SetSupply(metrics.Supply{
		Total:     vm.ledger.TotalSupply(),
		Burned:    vm.ledger.TotalBurned(),
		Fees:      vm.ledger.TotalFees(),
		Emission:  vm.ledger.BalanceOf(vm.emission.Address()),
		Treasury:  vm.ledger.BalanceOf(vm.treasury.Address()),
		Phase:     phase,
		Depleted:  vm.emission.Depleted(),
		Proposals: vm.treasury.GetProposalCount(),
	})
}

// Shutdown stops accepting operations. The database passed to Initialize is
// left open.
func (vm *VM) Shutdown(context.Context) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.shutdown || vm.db == nil {
		return nil
	}
	vm.shutdown = true
	vm.log.Info("shutting down goldx vm",
		log.Uint64("height", vm.height),
	)
	return vm.db.Close()
}

// Height is the number of operations committed since genesis.
func (vm *VM) Height() uint64 {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	return vm.height
}

// Events returns the events committed at height.
func (vm *VM) Events(height uint64) ([]state.Record, error) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	if err := vm.ready(); err != nil {
		return nil, err
	}
	return vm.state.GetEvents(height)
}

// Genesis returns the bytes the VM was created from.
func (vm *VM) Genesis() ([]byte, error) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	if err := vm.ready(); err != nil {
		return nil, err
	}
	return vm.state.GetGenesis()
}

// Ledger is a read-only view. Mutations go through the VM.
func (vm *VM) Ledger() ledger.Reader {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	return vm.ledger
}

func (vm *VM) Emission() *emission.Vault {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	return vm.emission
}

func (vm *VM) Treasury() *treasury.Vault {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	return vm.treasury
}

// Clock is the clock the ledger checks referral cooldowns against.
func (vm *VM) Clock() *mockable.Clock {
	return &vm.clock
}
