// Package metrics provides Prometheus instrumentation for the Spyglass
// client.
//
// A Collector registers request, error and cache metrics on a
// prometheus.Registry (its own by default) and is attached to a client
// with client.WithMetrics. Applications expose the registry through
// Handler or scrape it with their own promhttp setup.
//
//	collector := metrics.NewCollector(metrics.Config{}, nil)
//	c, _ := client.New(cfg, client.WithMetrics(collector))
//	http.Handle("/metrics", collector.Handler())
package metrics
