package types

import (
	"errors"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty database url returns ErrDatabaseURLEmpty",
			config:  Config{},
			wantErr: ErrDatabaseURLEmpty,
		},
		{
			name:    "negative open conns returns ErrPoolSizeNegative",
			config:  Config{DatabaseURL: "sqlite:///tmp/b.db", MaxOpenConns: -1},
			wantErr: ErrPoolSizeNegative,
		},
		{
			name:    "negative idle conns returns ErrPoolSizeNegative",
			config:  Config{DatabaseURL: "sqlite:///tmp/b.db", MaxIdleConns: -1},
			wantErr: ErrPoolSizeNegative,
		},
		{
			name:    "negative lifetime returns ErrLifetimeNegative",
			config:  Config{DatabaseURL: "sqlite:///tmp/b.db", ConnMaxLifetime: -time.Second},
			wantErr: ErrLifetimeNegative,
		},
		{
			name:   "valid sqlite config",
			config: Config{DatabaseURL: "sqlite:///tmp/b.db", MaxOpenConns: 4},
		},
		{
			name:   "scheme is not checked at config level",
			config: Config{DatabaseURL: "mysql://localhost/b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
