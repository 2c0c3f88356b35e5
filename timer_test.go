package autolog

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *PerfLogger {
	opts := DefaultOptions()
	opts.EmitEachTimer = false
	return New(WriterSink{W: io.Discard}, opts)
}

func Test_StopFreezesRecord(t *testing.T) {
	p := newTestLogger()
	ctx := ContextWithRegistry(context.Background())

	tm := p.Start(ctx, "op")
	assert.True(t, tm.Running())
	time.Sleep(2 * time.Millisecond)
	tm.Stop()

	rec := tm.Record()
	assert.False(t, tm.Running())
	assert.GreaterOrEqual(t, rec.ExecutionTimeMs, int64(0))
	assert.False(t, rec.EndTime.Before(rec.StartTime))
}

func Test_ZombieParentGuard(t *testing.T) {
	p := newTestLogger()

	a := p.Start(context.Background(), "a")
	a.Stop()

	b := p.Start(context.Background(), "b")
	b.SetParent(a)

	assert.Nil(t, b.Parent())
	assert.Empty(t, a.Children())
}

func Test_SetParentNilIsNoop(t *testing.T) {
	p := newTestLogger()
	tm := p.Start(context.Background(), "root")
	tm.SetParent(nil)
	assert.Nil(t, tm.Parent())
}

func Test_ChildrenKeepStartOrder(t *testing.T) {
	p := newTestLogger()
	ctx := ContextWithRegistry(context.Background())

	root := p.Start(ctx, "root")
	c1 := p.Start(ctx, "first")
	c1.Stop()
	c2 := p.Start(ctx, "second")
	grandchild := p.Start(ctx, "second.inner")
	grandchild.Stop()
	c2.Stop()
	c3 := p.Start(ctx, "third")
	c3.Stop()
	root.Stop()

	require.Len(t, root.Children(), 3)
	assert.Equal(t, "first", root.Children()[0].Record().InvokedMethod)
	assert.Equal(t, "second", root.Children()[1].Record().InvokedMethod)
	assert.Equal(t, "third", root.Children()[2].Record().InvokedMethod)

	require.Len(t, c2.Children(), 1)
	assert.Equal(t, "second.inner", c2.Children()[0].Record().InvokedMethod)
}

func Test_AverageExecutionTime(t *testing.T) {
	tm := &Timer{record: Record{ExecutionTimeMs: 1000, ProcessedItems: 4}}
	tm.computeAverageExecutionTime()
	assert.Equal(t, FormatDuration(250), tm.Record().AverageByItem)
}

func Test_AverageExecutionTime_ZeroItems(t *testing.T) {
	tm := &Timer{record: Record{ExecutionTimeMs: 1000}}
	tm.computeAverageExecutionTime()
	assert.Empty(t, tm.Record().AverageByItem)

	tm.SetProcessedItems(0)
	tm.computeAverageExecutionTime()
	assert.Empty(t, tm.Record().AverageByItem)
}

func Test_DoubleStopLastWriteWins(t *testing.T) {
	p := newTestLogger()
	tm := p.Start(context.Background(), "op")

	tm.Stop()
	firstEnd := tm.Record().EndTime
	time.Sleep(2 * time.Millisecond)
	tm.Stop()

	assert.True(t, tm.Record().EndTime.After(firstEnd))
}

func Test_CommentsAccumulateInOrder(t *testing.T) {
	p := newTestLogger()
	tm := p.Start(context.Background(), "op")
	tm.AddComment("cache miss")
	tm.AddComment("retried once")
	tm.Stop()

	assert.Equal(t, []string{"cache miss", "retried once"}, tm.Record().Comments)
}
