// Package metrics collects Prometheus metrics for a grading run and writes them
// to a node_exporter textfile collector file.
package metrics
