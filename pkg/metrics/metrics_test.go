package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { RegisterCollectors(reg) })

	before := testutil.ToFloat64(DocumentsSigned)
	DocumentsSigned.Inc()
	require.Equal(t, before+1, testutil.ToFloat64(DocumentsSigned))

	n, err := testutil.GatherAndCount(reg, "docsign_documents_signed_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// the same collectors cannot be registered twice on one registry
	require.Panics(t, func() { RegisterCollectors(reg) })
}
