package observability

type nopCounter struct{}

func (nopCounter) Add(float64, ...Label) {}

// NopCounter returns a counter that discards all increments. Useful as a safe
// fallback in tests and partially wired setups.
func NopCounter() Counter { return nopCounter{} }

type nopHistogram struct{}

func (nopHistogram) Observe(float64, ...Label) {}

// NopHistogram returns a histogram that discards all observations.
func NopHistogram() Histogram { return nopHistogram{} }
