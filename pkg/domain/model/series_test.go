package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/lescientifik/tcia-dl/pkg/domain/model"
)

func TestParseSeriesMetadata(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		wantZip bool
	}{
		{
			name:    "zip payload",
			raw:     `{"Result":{"Type":["ZIP"]}}`,
			wantZip: true,
		},
		{
			name:    "non-zip payload",
			raw:     `{"Result":{"Type":["TEXT"]}}`,
			wantZip: false,
		},
		{
			name:    "empty type list",
			raw:     `{"Result":{"Type":[]}}`,
			wantZip: false,
		},
		{
			name:    "missing result",
			raw:     `{}`,
			wantZip: false,
		},
		{
			name:    "invalid JSON",
			raw:     `not json at all`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := model.ParseSeriesMetadata(tt.raw)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Value(t, meta.IsZip()).Equal(tt.wantZip)
		})
	}
}
