package ftp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Control channel
	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ftpvfs_commands_total",
			Help: "Total number of FTP replies received, by command verb and reply class",
		},
		[]string{"verb", "class"},
	)

	reconnectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ftpvfs_reconnects_total",
			Help: "Total number of control connection reconnects",
		},
		[]string{"result"},
	)

	sessionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ftpvfs_sessions_open",
			Help: "Number of logged in FTP sessions",
		},
	)

	// Directory listings
	listingFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ftpvfs_listing_fallbacks_total",
			Help: "Total number of listing strategy fallbacks",
		},
		[]string{"to"},
	)

	dirCacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ftpvfs_dircache_requests_total",
			Help: "Total number of directory cache lookups",
		},
		[]string{"result"},
	)

	// Transfers
	transferBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ftpvfs_transfer_bytes_total",
			Help: "Total bytes moved over data connections",
		},
		[]string{"direction"},
	)

	abortsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ftpvfs_aborts_total",
			Help: "Total number of aborted transfers",
		},
	)
)
