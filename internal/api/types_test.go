package api

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportID_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want ReportID
	}{
		{name: "number", json: `{"id": 42}`, want: "42"},
		{name: "string", json: `{"id": "r-7"}`, want: "r-7"},
		{name: "null", json: `{"id": null}`, want: ""},
		{name: "missing", json: `{}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Report
			require.NoError(t, json.Unmarshal([]byte(tt.json), &r))
			assert.Equal(t, tt.want, r.ID)
		})
	}
}

func TestReportID_UnmarshalRejectsObjects(t *testing.T) {
	var r Report
	assert.Error(t, json.Unmarshal([]byte(`{"id": {"x": 1}}`), &r))
}

func TestReportRef(t *testing.T) {
	reports := []Report{{Name: "a"}, {ID: "abc", Name: "b"}, {ID: " ", Name: "c"}}

	ref, ok := ReportRef(reports, 0)
	assert.True(t, ok)
	assert.Equal(t, "1", ref)

	ref, ok = ReportRef(reports, 1)
	assert.True(t, ok)
	assert.Equal(t, "abc", ref)

	ref, ok = ReportRef(reports, 2)
	assert.True(t, ok)
	assert.Equal(t, "3", ref)

	_, ok = ReportRef(reports, 3)
	assert.False(t, ok)
	_, ok = ReportRef(reports, -1)
	assert.False(t, ok)
}

func TestValidateAidQuantity(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "0", wantErr: true},
		{input: "6", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "", wantErr: true},
		{input: "2.5", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "1", want: 1},
		{input: "3", want: 3},
		{input: " 5 ", want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ValidateAidQuantity(tt.input, 5)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidQuantity))
				assert.Equal(t, "Please enter a valid quantity (1-5).", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "Only 2 available.", (&APIError{Status: 400, Message: "Only 2 available.", Path: "/api/request-aid"}).Error())
	assert.Equal(t, "/api/inventory: 500 Internal Server Error", (&APIError{Status: 500, Path: "/api/inventory"}).Error())
	assert.Equal(t, "/x: status 599", (&APIError{Status: 599, Path: "/x"}).Error())
}
