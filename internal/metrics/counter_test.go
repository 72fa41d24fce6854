package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/contextmenu/pkg/contextmenu"
)

type okPresenter struct{}

func (okPresenter) Name() string { return "ok" }

func (okPresenter) Present(context.Context, contextmenu.Options) error { return nil }

func TestPopupCounterRecordsGatewayOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := NewPopupCounter(reg)
	gw := contextmenu.New(okPresenter{}, contextmenu.WithCounter(counter))

	ctx := context.Background()
	require.NoError(t, gw.Ping(ctx, []byte(`{"items":[{"id":"a","label":"Copy"}]}`)))
	require.NoError(t, gw.Ping(ctx, []byte(`{"items":[]}`)))
	require.Error(t, gw.Ping(ctx, []byte(`{"items":[{"id":"a"}]}`)))

	assert.Equal(t, 1.0, testutil.ToFloat64(counter.Vec().WithLabelValues(contextmenu.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.Vec().WithLabelValues(contextmenu.OutcomeEmpty)))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.Vec().WithLabelValues(contextmenu.OutcomeDeserialization)))
	assert.Equal(t, 0.0, testutil.ToFloat64(counter.Vec().WithLabelValues(contextmenu.OutcomePlatform)))
}

func TestHandlerForRegistryServesCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := NewPopupCounter(reg)
	counter.Increment(contextmenu.OutcomeOK)

	srv := httptest.NewServer(HandlerForRegistry(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `contextmenu_popup_total{outcome="ok"} 1`)
}
