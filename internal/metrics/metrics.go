package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventdesk_fixture_loads_total",
		Help: "Startup fixture loads by store and result.",
	}, []string{"store", "result"})

	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventdesk_mutations_total",
		Help: "Store mutations by store, operation, and result.",
	}, []string{"store", "op", "result"})

	BannersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventdesk_banners_total",
		Help: "Transient banner messages emitted to the UI.",
	})

	RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventdesk_view_rebuilds_total",
		Help: "Full view-model rebuilds by active page.",
	}, []string{"page"})

	EventsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "eventdesk_events_total",
		Help: "Events currently held in memory.",
	})

	ParticipantsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "eventdesk_participants_total",
		Help: "Participants currently held in memory.",
	})

	TagsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "eventdesk_tags_total",
		Help: "Tags currently held in memory.",
	})
)
