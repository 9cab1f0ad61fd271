package store_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapp/internal/adapter/store"
	"todoapp/internal/adapter/store/memory"
	"todoapp/internal/core/domain"
	"todoapp/pkg/telemetry"
)

func TestWithMetricsCountsTableOperations(t *testing.T) {
	ctx := context.Background()

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewAppMetrics(registry)

	instrumented := store.WithMetrics(memory.NewStore(), metrics)

	require.NoError(t, instrumented.Put(ctx, domain.Todo{ID: "1", UserID: "u", Title: "t"}))

	todos, err := instrumented.ListByUser(ctx, "u")
	require.NoError(t, err)
	require.Len(t, todos, 1)

	require.NoError(t, instrumented.Delete(ctx, "u", "1"))

	families, err := registry.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}

	for _, family := range families {
		if family.GetName() != "store_operations_total" {
			continue
		}

		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "operation" {
					counts[label.GetValue()] = metric.GetCounter().GetValue()
				}
			}
		}
	}

	assert.Equal(t, float64(1), counts["put"])
	assert.Equal(t, float64(1), counts["query"])
	assert.Equal(t, float64(1), counts["delete"])
}

func TestWithMetricsNilMetricsPassesThrough(t *testing.T) {
	inner := memory.NewStore()

	assert.Equal(t, inner, store.WithMetrics(inner, nil))
}
