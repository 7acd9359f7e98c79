package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/products/{id}", "404")
	before := testutil.ToFloat64(counter)

	RecordHTTPRequest(http.MethodGet, "/api/products/{id}", http.StatusNotFound, 5*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRecordCacheLookup(t *testing.T) {
	hits := CacheRequests.WithLabelValues("hit")
	misses := CacheRequests.WithLabelValues("miss")
	hitsBefore, missesBefore := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordCacheLookup(2, 0)
	RecordCacheLookup(0, 3)

	assert.Equal(t, hitsBefore+2, testutil.ToFloat64(hits))
	assert.Equal(t, missesBefore+3, testutil.ToFloat64(misses))
}

func TestRecordCommentConflict(t *testing.T) {
	before := testutil.ToFloat64(CommentConflicts)
	RecordCommentConflict()
	assert.Equal(t, before+1, testutil.ToFloat64(CommentConflicts))
}
