package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/chasta/skyguard/internal/store/model"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// StatisticsReader is the part of the store read by the collector.
type StatisticsReader interface {
	Statistics(ctx context.Context) (model.LeadStats, error)
}

type leadStatsCollector struct {
	store          StatisticsReader
	totalLeads     *prometheus.Desc
	totalValue     *prometheus.Desc
	leadsByPackage *prometheus.Desc
}

func NewLeadStatsCollector(s StatisticsReader) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_stored_%s", skyguard, name)
	}

	return &leadStatsCollector{
		store: s,
		totalLeads: prometheus.NewDesc(
			fqName("leads_total"),
			"Total number of stored leads.",
			nil,
			prometheus.Labels{},
		),
		totalValue: prometheus.NewDesc(
			fqName("estimated_value_idr"),
			"Sum of the estimated cost of the stored leads, in rupiah.",
			nil,
			prometheus.Labels{},
		),
		leadsByPackage: prometheus.NewDesc(
			fqName("leads_by_package_total"),
			"Stored leads by recommended package.",
			[]string{packageLabel},
			prometheus.Labels{},
		),
	}
}

// RegisterLeadStatsCollector registers the lead statistics collector to the default registerer.
func RegisterLeadStatsCollector(s StatisticsReader) {
	prometheus.MustRegister(NewLeadStatsCollector(s))
}

func (c *leadStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalLeads
	ch <- c.totalValue
	ch <- c.leadsByPackage
}

// Collect implements Collector.
func (c *leadStatsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := c.store.Statistics(ctx)
	if err != nil {
		zap.S().Named("lead_collector").Errorf("failed to collect lead statistics: %s", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.totalLeads, prometheus.GaugeValue, float64(stats.Total))
	ch <- prometheus.MustNewConstMetric(c.totalValue, prometheus.GaugeValue, float64(stats.TotalEstimatedValue))

	for pkg, total := range stats.ByPackage {
		ch <- prometheus.MustNewConstMetric(c.leadsByPackage, prometheus.GaugeValue, float64(total), pkg)
	}
}
