// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics and debug introspection for schedlab runs.
//
// Provides concurrent-safe state handling primitives including:
//   - a metrics registry the pool orchestrator updates per run
//   - debug probes describing the host the run executed on
//
// This package is cross-platform and build-tag-partitioned as needed.
package control
