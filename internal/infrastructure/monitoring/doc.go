/*
Package monitoring provides Prometheus metrics for option resolution.

# Overview

Metrics track how often diagnostic modes are queried and evaluated, how
host toggles resolve, collaborator loading, and the inspection HTTP API.

The mode evaluation counter is the observable form of the memoization
contract: for each key it never exceeds one per process.

# Usage

	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

Tests should pass prometheus.NewRegistry() so collectors never collide.
*/
package monitoring
