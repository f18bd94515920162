package main

import (
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/omron-fins/client/fins"
)

func parseInt(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	return int(n), err
}

func clockFromInts(v [6]int) fins.Clock {
	return fins.Clock{
		Year: v[0], Month: v[1], Day: v[2],
		Hour: v[3], Minute: v[4], Second: v[5],
	}
}

// errorRateLimiter logs the first error immediately, then suppresses
// every further error, whatever its kind, until minimumPeriod has
// elapsed, reporting how many were swallowed. Adapted from the rate-limited
// polling logger the connector glue code used against live PLCs.
type errorRateLimiter struct {
	mu            sync.Mutex
	lastLogged    time.Time
	suppressed    int
	minimumPeriod time.Duration
}

func (r *errorRateLimiter) report(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if now.Sub(r.lastLogged) < r.minimumPeriod {
		r.suppressed++
		return
	}
	if r.suppressed > 0 {
		log.Warnf("watch: suppressed %d similar errors", r.suppressed)
		r.suppressed = 0
	}
	log.WithError(err).Warn("watch: read failed")
	r.lastLogged = now
}

var watchCmd = &cobra.Command{
	Use:   "watch <address> <count>",
	Short: "Poll an address on an interval, printing each read",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := strconv.ParseUint(args[1], 10, 16)
		if err != nil {
			return err
		}
		interval, err := cmd.Flags().GetDuration("interval")
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Disconnect()

		limiter := &errorRateLimiter{minimumPeriod: 5 * time.Second}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			words, err := client.Read(fins.AddrString(args[0]), uint16(count))
			if err != nil {
				limiter.report(err)
			} else {
				log.WithField("values", words).Info("watch: read")
			}

			select {
			case <-ticker.C:
				continue
			case <-cmd.Context().Done():
				return nil
			}
		}
	},
}

func init() {
	watchCmd.Flags().Duration("interval", time.Second, "polling interval")
}
