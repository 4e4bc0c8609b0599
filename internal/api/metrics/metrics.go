// Package metrics declares the application counters. They register with the
// default Prometheus registry at package init; HTTP-level metrics come from
// the echoprometheus middleware instead.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "skillsling"

// SignupsTotal counts committed signups.
// Label:
//   - roles: "provider", "client" or "provider,client"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of committed signups, by selected roles.",
	},
	[]string{"roles"},
)

// SignupRejectionsTotal counts signup steps that failed validation.
var SignupRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signup_rejections_total",
		Help:      "Total number of signup steps rejected by validation.",
	},
	[]string{"step"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "no_account" or "mismatch"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ListingsCreatedTotal counts directory inserts.
// Label:
//   - source: "signup" or "profile"
var ListingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of provider listings added to a directory.",
	},
	[]string{"source"},
)

// GateRedirectsTotal counts requests bounced by a role gate.
var GateRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_redirects_total",
		Help:      "Total number of requests redirected because the session lacked the required role.",
	},
	[]string{"path"},
)

// DevicesIssuedTotal counts new device cookies.
var DevicesIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "devices_issued_total",
		Help:      "Total number of device identities issued to new clients.",
	},
)
