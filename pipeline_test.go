package switcher

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTask(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		size    int
	}{
		{name: "sequential", workers: 1, size: 10},
		{name: "zero workers", workers: 0, size: 10},
		{name: "more workers than data", workers: 8, size: 3},
		{name: "uneven chunks", workers: 3, size: 10},
		{name: "empty", workers: 4, size: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]*int, tt.size)
			for i := range data {
				data[i] = new(int)
			}
			var calls atomic.Int32

			task(tt.workers, data, func(v *int) {
				*v++
				calls.Add(1)
			})

			assert.Equal(t, int32(tt.size), calls.Load())
			for i, v := range data {
				assert.Equal(t, 1, *v, "item %d", i)
			}
		})
	}
}
