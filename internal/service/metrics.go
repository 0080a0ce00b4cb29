package service

import "github.com/prometheus/client_golang/prometheus"

const (
	resultOK      = "ok"
	resultInvalid = "invalid"
	resultFailed  = "failed"
)

var opsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "socialnet_operations_total",
		Help: "Entity operations by outcome",
	},
	[]string{"op", "result"},
)

func init() { prometheus.MustRegister(opsTotal) }
