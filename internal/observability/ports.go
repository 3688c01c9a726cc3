package observability

// Minimal metric ports; concrete vendors (prometheus) stay behind them so
// application services never import client libraries directly.

type Counter interface {
	Add(delta float64, labels ...Label)
}

type Histogram interface {
	Observe(value float64, labels ...Label)
}

type Label struct{ Key, Value string }

func L(k, v string) Label { return Label{Key: k, Value: v} }
