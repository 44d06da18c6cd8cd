package pricingv1

// Generator produces the price path for a single instrument. A generator is
// owned by exactly one symbol; its internal random state is private to that
// symbol and advances on every Next call, so a seeded generator replays the
// same path every run.
type Generator interface {
	// InitialPrice returns the price the instrument starts at. The value is
	// fixed per generator instance.
	InitialPrice() float64

	// Next computes the next price and traded volume from the previous
	// price. It never fails.
	Next(previousPrice float64) (price float64, volume int64)
}

// Factory builds the generator owned by one symbol.
type Factory func(symbol string) Generator
