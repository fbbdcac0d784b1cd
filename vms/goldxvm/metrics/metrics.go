// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"math/big"

	"github.com/luxfi/metric"

	"github.com/CREESTL/FuseG/utils/units"
	"github.com/CREESTL/FuseG/vms/goldxvm/vmerrs"
)

const (
	OperationLabel = "operation"
	ResultLabel    = "result"

	// ResultSuccess is the result label of operations that succeeded.
	ResultSuccess = "success"
)

var (
	_ Metrics = (*metricsImpl)(nil)

	operationLabels = []string{OperationLabel, ResultLabel}
	tokenDenom      = new(big.Float).SetInt(units.GoldX)
)

// Supply is the token accounting exported after every operation.
type Supply struct {
	Total     *big.Int
	Burned    *big.Int
	Fees      *big.Int
	Emission  *big.Int
	Treasury  *big.Int
	Phase     uint64
	Depleted  bool
	Proposals uint64
}

type Metrics interface {
	// Mark that operation finished with err.
	MarkOperation(operation string, err error)
	// Mark that a round emitted amount.
	AddMined(amount *big.Int)
	// Mark the token accounting after an operation.
	SetSupply(Supply)
}

func New(namespace string, registry metric.Registry) (Metrics, error) {
	metricsInstance := metric.NewWithRegistry(namespace, registry)

	return &metricsImpl{
		operations: metricsInstance.NewCounterVec(
			"operations",
			"Number of operations processed, by result class",
			operationLabels,
		),
		mined: metricsInstance.NewCounter(
			"mined",
			"Tokens emitted by the emission vault",
		),
		totalSupply: metricsInstance.NewGauge(
			"total_supply",
			"Tokens in circulation",
		),
		burned: metricsInstance.NewGauge(
			"burned",
			"Tokens destroyed by burns and fees",
		),
		fees: metricsInstance.NewGauge(
			"fees",
			"Tokens charged as transfer fees",
		),
		emissionBalance: metricsInstance.NewGauge(
			"emission_balance",
			"Tokens held by the emission vault",
		),
		treasuryBalance: metricsInstance.NewGauge(
			"treasury_balance",
			"Tokens held by the treasury vault",
		),
		phase: metricsInstance.NewGauge(
			"mining_phase",
			"Current phase of the emission round",
		),
		depleted: metricsInstance.NewGauge(
			"depleted",
			"1 if the emission vault has no round to mine",
		),
		proposals: metricsInstance.NewGauge(
			"proposals",
			"Number of treasury proposals submitted",
		),
	}, nil
}

type metricsImpl struct {
	operations metric.CounterVec
	mined      metric.Counter

	totalSupply     metric.Gauge
	burned          metric.Gauge
	fees            metric.Gauge
	emissionBalance metric.Gauge
	treasuryBalance metric.Gauge

	phase     metric.Gauge
	depleted  metric.Gauge
	proposals metric.Gauge
}

func (m *metricsImpl) MarkOperation(operation string, err error) {
	result := ResultSuccess
	if err != nil {
		result = vmerrs.Classify(err)
	}
	m.operations.With(metric.Labels{
		OperationLabel: operation,
		ResultLabel:    result,
	}).Inc()
}

func (m *metricsImpl) AddMined(amount *big.Int) {
	m.mined.Add(tokens(amount))
}

func (m *metricsImpl) SetSupply(s Supply) {
	m.totalSupply.Set(tokens(s.Total))
	m.burned.Set(tokens(s.Burned))
	m.fees.Set(tokens(s.Fees))
	m.emissionBalance.Set(tokens(s.Emission))
	m.treasuryBalance.Set(tokens(s.Treasury))
	m.phase.Set(float64(s.Phase))
	if s.Depleted {
		m.depleted.Set(1)
	} else {
		m.depleted.Set(0)
	}
	m.proposals.Set(float64(s.Proposals))
}

// tokens converts base units to whole tokens. Gauges are float64 so very
// large values lose precision.
func tokens(amount *big.Int) float64 {
	if amount == nil {
		return 0
	}
	f := new(big.Float).SetInt(amount)
	out, _ := f.Quo(f, tokenDenom).Float64()
	return out
}
