// File: adapters/sched_adapter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
// Description:
//   Adapter exposing the internal per-thread scheduler as api.Scheduler.

package adapters

import (
	"github.com/momentics/schedlab/api"
	"github.com/momentics/schedlab/internal/concurrency"
)

// NewSchedAdapter returns the host api.Scheduler.
func NewSchedAdapter() api.Scheduler {
	return concurrency.NewThreadScheduler()
}
