package service

import (
	"github.com/rs/zerolog"

	"github.com/flatfinder/flatfinder-api/internal/core/authz"
	"github.com/flatfinder/flatfinder-api/internal/core/domain"
	"github.com/flatfinder/flatfinder-api/internal/pkg/metrics"
)

// enforce records a decision and turns a denial into its typed error.
func enforce(log zerolog.Logger, rule string, actor domain.Actor, d authz.Decision) error {
	outcome := "allowed"
	if !d.Allowed {
		outcome = "denied"
		log.Debug().
			Str("rule", rule).
			Str("actor", actor.ID).
			Str("reason", d.Reason).
			Msg("authorization denied")
	}
	metrics.AuthzDecisionsTotal.WithLabelValues(rule, outcome).Inc()
	return d.Err()
}
