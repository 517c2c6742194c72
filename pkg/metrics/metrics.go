package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	skyguard = "skyguard"

	// Calculator metrics
	estimatesTotal = "estimates_total"
	leadsTotal     = "leads_total"

	// Admin metrics
	exportsTotal = "lead_exports_total"

	// Landing page metrics
	contentReadFailuresTotal = "content_read_failures_total"

	// Labels
	packageLabel = "package"
	statusLabel  = "status"
	sectionLabel = "section"
)

// Lead statuses
const (
	LeadStored   = "stored"
	LeadRejected = "rejected"
	LeadFailed   = "failed"
)

/**
* Metrics definition
**/
var estimatesTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: skyguard,
		Name:      estimatesTotal,
		Help:      "number of computed estimates by recommended package",
	},
	[]string{packageLabel},
)

var leadsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: skyguard,
		Name:      leadsTotal,
		Help:      "number of lead submissions by outcome",
	},
	[]string{statusLabel},
)

var exportsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: skyguard,
		Name:      exportsTotal,
		Help:      "number of lead exports",
	},
	[]string{statusLabel},
)

var contentReadFailuresTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: skyguard,
		Name:      contentReadFailuresTotal,
		Help:      "number of landing page sections served empty because the store read failed",
	},
	[]string{sectionLabel},
)

func IncreaseEstimatesTotalMetric(pkg string) {
	estimatesTotalMetric.With(prometheus.Labels{packageLabel: pkg}).Inc()
}

func IncreaseLeadsTotalMetric(status string) {
	leadsTotalMetric.With(prometheus.Labels{statusLabel: status}).Inc()
}

func IncreaseExportsTotalMetric(status string) {
	exportsTotalMetric.With(prometheus.Labels{statusLabel: status}).Inc()
}

func IncreaseContentReadFailuresMetric(section string) {
	contentReadFailuresTotalMetric.With(prometheus.Labels{sectionLabel: section}).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(estimatesTotalMetric)
	prometheus.MustRegister(leadsTotalMetric)
	prometheus.MustRegister(exportsTotalMetric)
	prometheus.MustRegister(contentReadFailuresTotalMetric)
	prometheus.MustRegister(totalUniqueVisitPerWeekMetric)
}
