package contextmenu

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPresenter struct {
	mu    sync.Mutex
	calls []Options
	err   error
}

func (p *recordingPresenter) Name() string { return "recording" }

func (p *recordingPresenter) Present(_ context.Context, opts Options) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, opts)
	return p.err
}

func (p *recordingPresenter) Calls() []Options {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Options, len(p.calls))
	copy(out, p.calls)
	return out
}

type countingCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *countingCounter) Increment(val ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[val[0]]++
}

func TestGatewayPing_CopyPasteScenario(t *testing.T) {
	presenter := &recordingPresenter{}
	gw := New(presenter)

	err := gw.Ping(context.Background(), []byte(`{"items":[{"id":"a","label":"Copy"},{"id":"b","label":"Paste","enabled":false}]}`))
	require.NoError(t, err)

	calls := presenter.Calls()
	require.Len(t, calls, 1)
	items := calls[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, "Copy", items[0].Label)
	assert.True(t, items[0].IsEnabled())
	assert.Equal(t, "Paste", items[1].Label)
	assert.False(t, items[1].IsEnabled())
}

func TestGatewayPing_DeserializationNeverReachesPresenter(t *testing.T) {
	presenter := &recordingPresenter{}
	counter := &countingCounter{}
	gw := New(presenter, WithCounter(counter))

	err := gw.Ping(context.Background(), []byte(`{"items":[{"id":"a","label":"File","subItems":[{"id":"b"}]}]}`))
	require.Error(t, err)

	var derr *DeserializationError
	assert.True(t, errors.As(err, &derr))
	assert.Empty(t, presenter.Calls())
	assert.Equal(t, 1, counter.counts[OutcomeDeserialization])
}

func TestGatewayPopup_EmptyMenu(t *testing.T) {
	presenter := &recordingPresenter{}
	counter := &countingCounter{}
	gw := New(presenter, WithCounter(counter))

	require.NoError(t, gw.Popup(context.Background(), Options{}))
	assert.Empty(t, presenter.Calls())
	assert.Equal(t, 1, counter.counts[OutcomeEmpty])

	gw.SetRejectEmpty(true)
	err := gw.Popup(context.Background(), Options{Items: []MenuItem{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyMenu)
	assert.Equal(t, KindPlatform, Kind(err))
	assert.Empty(t, presenter.Calls())
}

func TestGatewayPopup_WrapsPresenterFailure(t *testing.T) {
	cause := errors.New("no active window")
	presenter := &recordingPresenter{err: cause}
	counter := &countingCounter{}
	gw := New(presenter, WithCounter(counter))

	err := gw.Popup(context.Background(), Options{Items: []MenuItem{{ID: "a", Label: "Copy"}}})
	require.Error(t, err)

	var perr *PlatformError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "recording", perr.Backend)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, counter.counts[OutcomePlatform])
	assert.Contains(t, err.Error(), "via recording")
}

func TestGatewayPopup_NilPresenter(t *testing.T) {
	gw := New(nil)
	err := gw.Popup(context.Background(), Options{Items: []MenuItem{{ID: "a", Label: "Copy"}}})
	assert.ErrorIs(t, err, ErrPlatformUnavailable)
	assert.Equal(t, "", gw.Backend())
}

func TestGatewayPopup_OmittedCoordinatesSucceed(t *testing.T) {
	presenter := &recordingPresenter{}
	gw := New(presenter)

	require.NoError(t, gw.Popup(context.Background(), Options{Items: []MenuItem{{ID: "a", Label: "Copy"}}}))
	_, _, ok := presenter.Calls()[0].Anchor()
	assert.False(t, ok)

	require.NoError(t, gw.Popup(context.Background(), Options{Items: []MenuItem{{ID: "a", Label: "Copy"}}, X: Float(4)}))
	_, _, ok = presenter.Calls()[1].Anchor()
	assert.False(t, ok, "a single coordinate falls back to cursor anchoring")

	require.NoError(t, gw.Popup(context.Background(), Options{Items: []MenuItem{{ID: "a", Label: "Copy"}}, X: Float(4), Y: Float(8)}))
	x, y, ok := presenter.Calls()[2].Anchor()
	assert.True(t, ok)
	assert.Equal(t, 4.0, x)
	assert.Equal(t, 8.0, y)
}

func TestGatewayPing_ConcurrentCallers(t *testing.T) {
	presenter := &recordingPresenter{}
	gw := New(presenter)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, gw.Ping(context.Background(), []byte(`{"items":[{"id":"a","label":"Copy"}]}`)))
		}()
	}
	wg.Wait()
	assert.Len(t, presenter.Calls(), 16)
}

func TestWalkSkipsChildrenWhenAsked(t *testing.T) {
	opts := Options{Items: []MenuItem{
		{ID: "a", Label: "File", SubItems: []MenuItem{{ID: "b", Label: "Open"}}},
		{ID: "c", Label: "Edit", SubItems: []MenuItem{{ID: "d", Label: "Undo"}}},
	}}

	var visited []string
	opts.Walk(func(item MenuItem, depth int) bool {
		visited = append(visited, item.ID)
		return item.ID != "a"
	})
	assert.Equal(t, []string{"a", "c", "d"}, visited)
	assert.Equal(t, 4, opts.Count())
}

func TestKindOutsideTaxonomy(t *testing.T) {
	assert.Equal(t, "", Kind(nil))
	assert.Equal(t, "", Kind(errors.New("boom")))
}
