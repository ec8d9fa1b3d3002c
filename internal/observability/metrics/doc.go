// Package metrics provides the Prometheus metrics recorded during a digest run.
//
// Metrics live in a dedicated Registry rather than the global default one, so a
// run can be exported as a node_exporter textfile without Go runtime noise:
//
//	metrics.RecordHeadlinesFetched(len(links))
//	metrics.RecordArticleSummarized(true)
//	if err := metrics.WriteTextfile("/var/lib/node_exporter/digest.prom"); err != nil {
//	    // handle error
//	}
package metrics
