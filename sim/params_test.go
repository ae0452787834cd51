package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapParameters_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  CapParameters
		wantErr bool
	}{
		{"defaults", DefaultCapParameters(), false},
		{"floor equals ceiling", CapParameters{Ceiling: 100, Floor: 100, M: 1, Z: 1}, false},
		{"floor above ceiling", CapParameters{Ceiling: 100, Floor: 101, M: 1, Z: 1}, true},
		{"zero M", CapParameters{Ceiling: 100, Floor: 1, M: 0, Z: 1}, true},
		{"zero Z", CapParameters{Ceiling: 100, Floor: 1, M: 1, Z: 0}, true},
		{"M below Z is fine", CapParameters{Ceiling: 100, Floor: 1, M: 3, Z: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParameters)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
