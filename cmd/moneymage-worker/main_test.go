package main

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestFatalConsumeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil after clean stop", nil, false},
		{"context cancelled by shutdown", context.Canceled, false},
		{"wrapped cancellation", fmt.Errorf("consume: %w", context.Canceled), false},
		{"delivery channel closed", errors.New("message channel closed"), true},
		{"broker failure", fmt.Errorf("start consuming: %w", errors.New("connection reset")), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fatalConsumeError(tt.err); got != tt.want {
				t.Errorf("fatalConsumeError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
