// Package output renders pipeline results into the review artifacts: the
// brag document, the contribution summary, the CV and performance bodies,
// and a JSON run-metadata dump.
package output
