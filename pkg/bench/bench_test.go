package bench

import (
	"bytes"
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/wordfix/pkg/corpus"
	"github.com/bastiangx/wordfix/pkg/predict"
)

type counting struct {
	indexed int
	lookups atomic.Int64
}

func (c *counting) Index(string) (bool, error) {
	c.indexed++
	return true, nil
}

func (c *counting) FindSimilarWords(string) []string {
	c.lookups.Add(1)
	return nil
}

func (c *counting) String() string { return "counting" }

func testCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	c, err := corpus.Read(strings.NewReader("kitten:true:kittn,kiten\nsitting:true:siting\nsun:false:sin\n"))
	require.NoError(t, err)
	return c
}

func TestRunOnePass(t *testing.T) {
	ws := &counting{}
	r, err := Run(context.Background(), ws, testCorpus(t), Options{Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, ws.indexed)
	assert.EqualValues(t, 4, ws.lookups.Load())
	assert.Equal(t, 3, r.Indexed)
	assert.Equal(t, 4, r.Queries)
	assert.LessOrEqual(t, r.P50, r.P95)
	assert.LessOrEqual(t, r.P95, r.P99)
	assert.LessOrEqual(t, r.P99, r.Max)
	assert.Equal(t, "counting", r.Backend)
}

func TestRunForDuration(t *testing.T) {
	ws := &counting{}
	r, err := Run(context.Background(), ws, testCorpus(t), Options{Rate: 200, Duration: 100 * time.Millisecond})
	require.NoError(t, err)
	assert.Greater(t, r.Queries, 4, "queries are cycled")
	assert.Less(t, r.Queries, 100, "rate limited")
	assert.EqualValues(t, r.Queries, ws.lookups.Load())
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, &counting{}, testCorpus(t), Options{Duration: time.Second})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunEmptyCorpus(t *testing.T) {
	_, err := Run(context.Background(), &counting{}, &corpus.Corpus{}, Options{})
	assert.Error(t, err)
}

func TestRunWithEngine(t *testing.T) {
	p, err := predict.New(predict.DefaultSettings(), predict.Noop{})
	require.NoError(t, err)
	r, err := Run(context.Background(), p, testCorpus(t), Options{Workers: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, r.Queries)
	assert.Equal(t, 3, p.Stats().Words)

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	assert.Contains(t, buf.String(), "4 queries in")
	assert.Contains(t, buf.String(), "PreDict SE")
}

func TestPercentile(t *testing.T) {
	var d []time.Duration
	for i := 1; i <= 100; i++ {
		d = append(d, time.Duration(i))
	}
	assert.Equal(t, time.Duration(50), percentile(d, 0.5))
	assert.Equal(t, time.Duration(95), percentile(d, 0.95))
	assert.Equal(t, time.Duration(99), percentile(d, 0.99))
	assert.Equal(t, time.Duration(1), percentile(d, 0))
	assert.Equal(t, time.Duration(0), percentile(nil, 0.5))
	assert.Equal(t, time.Duration(7), percentile([]time.Duration{7}, 0.99))
}
