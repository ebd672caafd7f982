package publicdata

import (
	"github.com/sinbum/korea-public-data-be-sub000/auth"
	"github.com/sinbum/korea-public-data-be-sub000/config"
	"github.com/sinbum/korea-public-data-be-sub000/logger"
	"github.com/sinbum/korea-public-data-be-sub000/retry"
)

// NewFromConfig builds a client from a loaded configuration: the portal
// service key becomes a query-parameter credential, the retry knobs feed
// an exponential policy, and logging follows the configured level and
// format.
func NewFromConfig(cfg *config.Config) (*Client, error) {
	strategy := auth.None()
	if cfg.ServiceKey != "" {
		strategy = auth.StaticKey("serviceKey", cfg.ServiceKey)
	}

	return New(Config{
		BaseURL:  cfg.BaseURL,
		Strategy: strategy,
		Policy:   retry.NewExponential(cfg.Retry.PolicyConfig()),
		Logger:   logger.New(cfg.Log),
		Timeout:  cfg.Timeout,
	})
}
