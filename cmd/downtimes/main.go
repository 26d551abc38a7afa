// Downtimes lists the scheduled-maintenance windows a monitoring
// daemon has recorded in its state-retention file.
//
// Usage:
//
//	# table of downtimes from the default retention file
//	downtimes
//
//	# explicit retention file, tab-delimited output
//	downtimes --format tab /var/spool/nagios/retention.dat
//
//	# archive the current snapshot into the configured database
//	downtimes archive
//
//	# serve the current snapshot over HTTP
//	downtimes serve --config downtimes.yaml
package main

func main() {
	Execute()
}
