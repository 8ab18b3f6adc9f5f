package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunWithRestarts(t *testing.T) {
	errConfig := errors.New("bad config")

	tests := []struct {
		name      string
		results   []error
		max       int
		wantErr   error
		wantCalls int
	}{
		{name: "clean stop", results: []error{nil}, max: 3, wantCalls: 1},
		{name: "restarts after a panic", results: []error{fmt.Errorf("%w: boom", errPanicRecovered), nil}, max: 3, wantCalls: 2},
		{name: "other errors are fatal", results: []error{errConfig}, max: 3, wantErr: errConfig, wantCalls: 1},
		{
			name:      "gives up after max restarts",
			results:   []error{errPanicRecovered, errPanicRecovered, errPanicRecovered},
			max:       2,
			wantErr:   errPanicRecovered,
			wantCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			run := func() error {
				err := tt.results[calls]
				calls++
				return err
			}

			err := runWithRestarts(run, tt.max, 0)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}
