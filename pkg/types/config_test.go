package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
		wantMsg string // substring of the error message
	}{
		{
			name:    "empty backend",
			config:  Config{DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend is named in the error",
			config:  Config{Backend: "postgres", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
			wantMsg: `"postgres"`,
		},
		{
			name:    "unknown backend with spaces is quoted",
			config:  Config{Backend: "my db"},
			wantErr: ErrBackendUnknown,
			wantMsg: `"my db"`,
		},
		{
			name:   "sqlite",
			config: Config{Backend: BackendSQLite, DataDir: "/tmp/data"},
		},
		{
			name:   "sqlite without directories",
			config: Config{Backend: BackendSQLite},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
