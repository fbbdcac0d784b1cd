// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utilmetric

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/rpc/v2"
	metric "github.com/luxfi/metric"
)

const methodLabel = "method"

// APIInterceptor records per method call counts, latency and errors of a
// gorilla rpc server.
type APIInterceptor interface {
	InterceptRequest(i *rpc.RequestInfo) *http.Request
	AfterRequest(i *rpc.RequestInfo)
}

type contextKey int

const requestTimestampKey contextKey = iota

type apiInterceptor struct {
	requestDurationCount metric.CounterVec
	requestDurationSum   metric.GaugeVec
	requestErrors        metric.CounterVec
}

// NewAPIInterceptor registers the request metrics under namespace_api.
func NewAPIInterceptor(namespace string, registry metric.Registry) (APIInterceptor, error) {
	metricsInstance := metric.NewWithRegistry(AppendNamespace(namespace, "api"), registry)

	return &apiInterceptor{
		requestDurationCount: metricsInstance.NewCounterVec(
			"request_duration_count",
			"Number of times this type of request was made",
			[]string{methodLabel},
		),
		requestDurationSum: metricsInstance.NewGaugeVec(
			"request_duration_sum",
			"Amount of time in nanoseconds that has been spent handling this type of request",
			[]string{methodLabel},
		),
		requestErrors: metricsInstance.NewCounterVec(
			"request_error_count",
			"Number of request errors",
			[]string{methodLabel},
		),
	}, nil
}

func (*apiInterceptor) InterceptRequest(i *rpc.RequestInfo) *http.Request {
	ctx := context.WithValue(i.Request.Context(), requestTimestampKey, time.Now())
	return i.Request.WithContext(ctx)
}

func (apr *apiInterceptor) AfterRequest(i *rpc.RequestInfo) {
	timestamp, ok := i.Request.Context().Value(requestTimestampKey).(time.Time)
	if !ok {
		return
	}

	labels := metric.Labels{methodLabel: i.Method}
	apr.requestDurationCount.With(labels).Inc()
	apr.requestDurationSum.With(labels).Add(float64(time.Since(timestamp)))
	if i.Error != nil {
		apr.requestErrors.With(labels).Inc()
	}
}
