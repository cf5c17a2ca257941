package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Failure stages reported by FineIssueFailures.
const (
	StageAuthorize = "authorize"
	StageChannel   = "channel"
	StageNotice    = "notice"
	StageRecord    = "record"
)

var (
	FinesIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fines_issued_total",
		Help: "Fines successfully issued.",
	})

	FineIssueFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fine_issue_failures_total",
			Help: "Fine issuance attempts that failed, by stage.",
		},
		[]string{"stage"},
	)

	CasesClosed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cases_closed_total",
		Help: "Cases closed through the Close Case button.",
	})

	CaseCloseDenied = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "case_close_denied_total",
		Help: "Close Case clicks rejected for missing the staff role.",
	})

	ChannelDeleteFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "case_channel_delete_failures_total",
		Help: "Case channels that could not be deleted after closure.",
	})
)

// Init registers the collectors in the default registry. Call once at startup.
func Init() {
	prometheus.MustRegister(FinesIssued, FineIssueFailures, CasesClosed, CaseCloseDenied, ChannelDeleteFailures)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
