package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/kubev2v/patchcord-planner/internal/rackplan"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type rackPlanCollector struct {
	directory rackplan.Directory
	racks     *prometheus.Desc
}

// NewRackPlanCollector exposes the size of the rack plan served by directory.
func NewRackPlanCollector(directory rackplan.Directory) prometheus.Collector {
	return &rackPlanCollector{
		directory: directory,
		racks: prometheus.NewDesc(
			fmt.Sprintf("%s_rack_plan_racks", subsystem),
			"Number of racks known to the rack plan.",
			nil,
			prometheus.Labels{},
		),
	}
}

func (c *rackPlanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.racks
}

func (c *rackPlanCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	racks, err := c.directory.List(ctx)
	if err != nil {
		zap.S().Named("rack_plan_collector").Errorf("failed to list racks: %s", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.racks, prometheus.GaugeValue, float64(len(racks)))
}
