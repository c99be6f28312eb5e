package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bbs_commands_total",
			Help: "Total number of executed slash commands by name and outcome severity.",
		},
		[]string{"command", "severity"},
	)

	postsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bbs_posts_created_total",
		Help: "Total number of successfully created posts.",
	})

	postsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bbs_posts_rejected_total",
			Help: "Total number of rejected post submissions by reason.",
		},
		[]string{"reason"},
	)
)
