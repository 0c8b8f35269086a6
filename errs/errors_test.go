package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrappedIPC(t *testing.T) {
	err := fmt.Errorf("%w: value set 3 runs past record end", ErrIPC)

	require.ErrorIs(t, err, ErrIPC)
	require.NotErrorIs(t, err, ErrNoMem)
	require.Contains(t, err.Error(), "value set 3")
}

func TestMetricError(t *testing.T) {
	var err error = &MetricError{PMID: 0x0c00002a, Code: -12}

	var me *MetricError
	require.True(t, errors.As(err, &me))
	require.Equal(t, int32(-12), me.Code)
	require.Equal(t, "metric 0xc00002a: error code -12", err.Error())
}
