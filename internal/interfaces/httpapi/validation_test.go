package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidator_UpdateMatchRequest(t *testing.T) {
	v := newValidator()
	ptr := func(s string) *string { return &s }

	tests := []struct {
		name    string
		req     updateMatchRequest
		wantErr bool
	}{
		{name: "empty body", req: updateMatchRequest{}},
		{name: "valid values", req: updateMatchRequest{ScheduledDate: ptr("2026-05-02"), ScheduledTime: ptr("19:30")}},
		{name: "clear date and time", req: updateMatchRequest{ScheduledDate: ptr(""), ScheduledTime: ptr("")}},
		{name: "bad date", req: updateMatchRequest{ScheduledDate: ptr("02/05/2026")}, wantErr: true},
		{name: "bad time", req: updateMatchRequest{ScheduledTime: ptr("7pm")}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.req)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
