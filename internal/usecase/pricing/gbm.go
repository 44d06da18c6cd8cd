package pricing

import (
	"hash/fnv"
	"math"
	"math/rand"

	pricingv1 "github.com/simx-exchange/market-feed-service/internal/domain/pricing/v1"
)

// dtPerStep is the annualized fraction of one simulated second, since
// volatility is quoted per year.
const dtPerStep = 1.0 / (365 * 24 * 60 * 60)

// Config parameterizes the geometric Brownian motion price model.
type Config struct {
	Volatility      float64
	InitialPriceMin float64
	InitialPriceMax float64
	VolumeMin       int64
	VolumeMax       int64
}

// GBM evolves a price along a geometric Brownian motion path:
//
//	S' = S * exp(-0.5*sigma^2*dt + sigma*sqrt(dt)*Z), Z ~ N(0,1)
//
// The drift term is folded into the -0.5*sigma^2 correction so the expected
// return per step is zero. All randomness comes from the seeded source, so a
// given seed replays the same path.
type GBM struct {
	config  Config
	initial float64
	rng     *rand.Rand
}

var _ pricingv1.Generator = (*GBM)(nil)

// NewGBM creates a seeded generator. The initial price is drawn once from
// the configured range and stays fixed for the generator's lifetime.
func NewGBM(config Config, seed int64) *GBM {
	rng := rand.New(rand.NewSource(seed))
	initial := config.InitialPriceMin
	if config.InitialPriceMax > config.InitialPriceMin {
		initial += rng.Float64() * (config.InitialPriceMax - config.InitialPriceMin)
	}

	return &GBM{
		config:  config,
		initial: initial,
		rng:     rng,
	}
}

// InitialPrice returns the starting price drawn at construction.
func (g *GBM) InitialPrice() float64 {
	return g.initial
}

// Next computes the next price from the previous one and draws the traded
// volume for the step.
func (g *GBM) Next(previousPrice float64) (float64, int64) {
	z := g.rng.NormFloat64()
	sigma := g.config.Volatility
	change := math.Exp(-0.5*sigma*sigma*dtPerStep + sigma*math.Sqrt(dtPerStep)*z)

	volume := g.config.VolumeMin
	if g.config.VolumeMax > g.config.VolumeMin {
		volume += g.rng.Int63n(g.config.VolumeMax - g.config.VolumeMin + 1)
	}

	return previousPrice * change, volume
}

// NewFactory derives one deterministic generator per symbol: the base seed is
// folded with a hash of the symbol id, so every symbol walks its own path and
// the whole market replays identically for a given base seed.
func NewFactory(config Config, seed int64) pricingv1.Factory {
	return func(symbol string) pricingv1.Generator {
		return NewGBM(config, seed^symbolSeed(symbol))
	}
}

func symbolSeed(symbol string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(symbol))
	return int64(h.Sum64())
}
