package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextRunAt(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	t.Run("later today", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 1, 15, 0, 0, loc)
		next := nextRunAt(now, 2)
		assert.Equal(t, time.Date(2025, 3, 10, 2, 0, 0, 0, loc), next)
	})

	t.Run("hour already passed", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
		next := nextRunAt(now, 2)
		assert.Equal(t, time.Date(2025, 3, 11, 2, 0, 0, 0, loc), next)
	})

	t.Run("exactly on the hour rolls to tomorrow", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 2, 0, 0, 0, loc)
		next := nextRunAt(now, 2)
		assert.Equal(t, time.Date(2025, 3, 11, 2, 0, 0, 0, loc), next)
	})
}
