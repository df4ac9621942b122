// Package metrics holds the Prometheus counters of the issuance core.
// Counters are created at package init so instrumented code never sees a
// nil collector; Register attaches them to a registry at startup.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var (
	AuthCodesIssuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auth_codes_issued_total",
		Help: "Total number of authorization codes issued.",
	})
	TokensIssuedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_tokens_issued_total",
		Help: "Total number of access tokens issued.",
	}, []string{"grant"})
	ExchangeFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_exchange_failures_total",
		Help: "Total number of failed code-to-token exchanges.",
	}, []string{"reason"})
	LoginSuccessTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auth_logins_success_total",
		Help: "Total number of successful logins.",
	})
	LoginFailureTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auth_logins_failure_total",
		Help: "Total number of failed logins.",
	})
	UsersRegisteredTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_users_registered_total",
		Help: "Total number of users registered.",
	}, []string{"provider"})
)

// GrantAuthorizationCode and GrantDirect label TokensIssuedTotal by how
// the token was obtained.
const (
	GrantAuthorizationCode = "authorization_code"
	GrantDirect            = "direct"
)

// Register attaches the issuance counters to reg. It should be called
// once at application startup.
func Register(reg prometheus.Registerer) {
	for _, c := range []prometheus.Collector{
		AuthCodesIssuedTotal,
		TokensIssuedTotal,
		ExchangeFailuresTotal,
		LoginSuccessTotal,
		LoginFailureTotal,
		UsersRegisteredTotal,
	} {
		if err := reg.Register(c); err != nil {
			log.Warn().Err(err).Msg("Failed to register issuance metric")
		}
	}
}
