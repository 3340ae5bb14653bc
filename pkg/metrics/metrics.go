package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "kilit", Name: "logins_total", Help: "Login attempts by result."},
		[]string{"result"},
	)
	TokenRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "kilit", Name: "token_refresh_total", Help: "Silent access-token refresh attempts by result."},
		[]string{"result"},
	)
	AuthzDenied = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "kilit", Name: "authz_denied_total", Help: "Authorization gate denials by required privilege."},
		[]string{"privilege"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "kilit", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "kilit", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Logins, TokenRefreshes, AuthzDenied, RateLimitAllowed, RateLimitRejected)
}
