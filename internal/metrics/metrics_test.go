package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveQuery(t *testing.T) {
	before := testutil.ToFloat64(QueryRequests.WithLabelValues("scatter", "empty"))

	ObserveQuery("scatter", "empty", time.Now())

	assert.Equal(t, before+1, testutil.ToFloat64(QueryRequests.WithLabelValues("scatter", "empty")))
}

func TestObserveLoad(t *testing.T) {
	failures := testutil.ToFloat64(StoreLoads.WithLabelValues("failure"))

	ObserveLoad(0, errors.New("missing file"))
	ObserveLoad(42, nil)

	assert.Equal(t, failures+1, testutil.ToFloat64(StoreLoads.WithLabelValues("failure")))
	assert.Equal(t, float64(42), testutil.ToFloat64(StoreRecords))
}
