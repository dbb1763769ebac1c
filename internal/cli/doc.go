// Package cli wires the cobra commands: generate, repos, config, models,
// and version. Command handlers translate pipeline and provider errors into
// deterministic exit codes.
package cli
