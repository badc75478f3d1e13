package config

import (
	"skillfit/internal/errors"

	"github.com/hashicorp/vault/api"
	"github.com/sony/gobreaker/v2"
)

// secretBreaker wraps Vault secret reads with circuit breaker protection
type secretBreaker struct {
	cb *gobreaker.CircuitBreaker[*api.Secret]
}

// newSecretBreaker creates a circuit breaker for Vault reads
func newSecretBreaker(cfg CircuitBreakerConfig, logger *errors.Logger) *secretBreaker {
	// If circuit breaker is disabled, return nil to indicate no circuit breaker
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        "Vault-Secrets",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests &&
				failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger != nil {
				logger.Info("Circuit breaker state changed",
					"name", name,
					"from", from.String(),
					"to", to.String(),
					"max_requests", cfg.MaxRequests,
					"failure_threshold", cfg.FailureThreshold)
			}
		},
	}

	return &secretBreaker{
		cb: gobreaker.NewCircuitBreaker[*api.Secret](settings),
	}
}

// Execute executes the provided function with circuit breaker protection
func (sb *secretBreaker) Execute(fn func() (*api.Secret, error)) (*api.Secret, error) {
	if sb == nil || sb.cb == nil {
		// If breaker is disabled/nil, just execute the function directly
		return fn()
	}
	return sb.cb.Execute(fn)
}

// GetStats returns circuit breaker statistics
func (sb *secretBreaker) GetStats() map[string]any {
	if sb == nil || sb.cb == nil {
		return map[string]any{
			"enabled": false,
		}
	}

	return map[string]any{
		"name":    sb.cb.Name(),
		"state":   sb.cb.State().String(),
		"counts":  sb.cb.Counts(),
		"enabled": true,
	}
}

// IsHealthy returns true if the circuit breaker is in closed state
func (sb *secretBreaker) IsHealthy() bool {
	if sb == nil || sb.cb == nil {
		return true // If no circuit breaker, consider it healthy
	}
	return sb.cb.State() == gobreaker.StateClosed
}
