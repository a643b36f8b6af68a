package repository

import (
	"testing"
	"time"
)

func TestCooldownActive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		last time.Time
		want bool
	}{
		{name: "just posted", last: now, want: true},
		{name: "one minute ago", last: now.Add(-time.Minute), want: true},
		{name: "just under the window", last: now.Add(-CommentCooldown + time.Second), want: true},
		{name: "exactly the window", last: now.Add(-CommentCooldown), want: false},
		{name: "an hour ago", last: now.Add(-time.Hour), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CooldownActive(tt.last, now); got != tt.want {
				t.Errorf("CooldownActive(%v) = %v, want %v", now.Sub(tt.last), got, tt.want)
			}
		})
	}
}
