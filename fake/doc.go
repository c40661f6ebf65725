// File: fake/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package fake provides fake implementations for testing and development.
// Provides predictable, controllable behavior for the api contracts
// that otherwise need OS privileges: affinity, scheduling and thread launch.
package fake
