package config

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantWarn  bool
	}{
		{name: "default info", level: "", wantDebug: false, wantWarn: true},
		{name: "debug", level: "debug", wantDebug: true, wantWarn: true},
		{name: "error", level: "error", wantDebug: false, wantWarn: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(&Config{Environment: "development", LogLevel: tt.level})
			ctx := context.Background()
			assert.Equal(t, tt.wantDebug, logger.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.wantWarn, logger.Enabled(ctx, slog.LevelWarn))
		})
	}
}
