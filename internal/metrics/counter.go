package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// PopupTotalName counts popup requests by outcome.
	PopupTotalName = "contextmenu_popup_total"
	popupTotalHelp = "Context menu popup requests by outcome."
)

// Counter wraps a labelled Prometheus counter.
type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

// Increment adds one to the series identified by val.
func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// Vec exposes the underlying collector.
func (c *Counter) Vec() *prometheus.CounterVec {
	return c.vec
}

// NewCounterWithRegistry creates a counter and registers it with reg.
func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// NewPopupCounter registers the popup outcome counter with reg.
func NewPopupCounter(reg prometheus.Registerer) *Counter {
	return NewCounterWithRegistry(reg, PopupTotalName, popupTotalHelp, "outcome")
}

// HandlerForRegistry returns an HTTP handler serving metrics from reg.
func HandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
