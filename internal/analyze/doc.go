// Package analyze contains the commit-analysis pipeline.
//
// Raw commits from the repository scanner are enriched with diff snippets
// under a per-repository byte budget and a per-commit cap, packed into
// request-sized batches, classified by an LLM provider, and aggregated into
// per-repository and cross-repository summaries plus CV and
// performance-report bodies.
//
// The model is treated as an untrusted, possibly-failing oracle: responses
// are bracket-scanned out of surrounding prose, defensively validated, and
// every failure degrades to a deterministic offline equivalent. Every commit
// ends the run with exactly one classification, even under total provider
// outage.
//
// Batches, repositories, and aggregation stages run strictly sequentially;
// output ordering matches input ordering and at most one request is in
// flight at a time.
package analyze
