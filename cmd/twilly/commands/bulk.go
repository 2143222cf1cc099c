package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// runBulk applies op to each sid in turn, reports every step and summarizes
// the run. It stops at the first failure other than a not found.
func runBulk(cmd *cobra.Command, interval time.Duration, verb string, sids []string, op twilio.BulkOperation) error {
	runner := &twilio.BulkRunner{
		Interval: interval,
		OnResult: func(result twilio.BulkResult) {
			switch {
			case result.NotFound:
				printf(cmd, "%s not found, skipped.\n", result.ID)
			case result.Err == nil:
				printf(cmd, "%s %s\n", verb, result.ID)
			}
		},
	}

	results, err := runner.Run(commandContext(cmd), sids, op)

	succeeded := 0

	for _, result := range results {
		if result.Success() {
			succeeded++
		}
	}

	printf(cmd, "%s %d of %d.\n", verb, succeeded, len(sids))

	return err
}
