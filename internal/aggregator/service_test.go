package aggregator

import (
	"testing"

	"github.com/hxuan190/split-engine/internal/config"
)

func TestClampSteps(t *testing.T) {
	svc := &Service{conf: &config.SplitterConfig{DefaultSteps: 8, MaxSteps: 64}}

	tests := []struct {
		name  string
		steps uint8
		want  uint8
	}{
		{"zero uses default", 0, 8},
		{"within bounds passes through", 16, 16},
		{"ceiling applies", 255, 64},
		{"exactly at ceiling", 64, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.clampSteps(tt.steps); got != tt.want {
				t.Errorf("clampSteps(%d) = %d, want %d", tt.steps, got, tt.want)
			}
		})
	}
}
