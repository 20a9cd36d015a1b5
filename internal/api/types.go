package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DefaultUnit is shown when the backend sends no unit for a supply.
const DefaultUnit = "units"

// Supply is an inventory line or a requestable supply.
type Supply struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
}

// DisplayUnit returns the unit, falling back to DefaultUnit.
func (s Supply) DisplayUnit() string {
	if strings.TrimSpace(s.Unit) == "" {
		return DefaultUnit
	}
	return s.Unit
}

// ReportID is an opaque report identifier. Backends send it either as a
// JSON number or a string; both decode to the same textual form.
type ReportID string

// UnmarshalJSON accepts numbers, strings and null.
func (id *ReportID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ReportID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("report id: %w", err)
	}
	*id = ReportID(n.String())
	return nil
}

// Report is a filed disaster report as listed by the backend.
type Report struct {
	ID           ReportID `json:"id,omitempty"`
	DisasterType string   `json:"disaster_type"`
	Name         string   `json:"name"`
	Timestamp    string   `json:"timestamp"`
	Details      string   `json:"details"`
}

// ReportRef returns the identifier to delete the report at index in the
// list it was fetched in. A backend-supplied id is preferred; otherwise the
// 1-based position is used, which is only valid while the list is unchanged.
func ReportRef(reports []Report, index int) (string, bool) {
	if index < 0 || index >= len(reports) {
		return "", false
	}
	if id := strings.TrimSpace(string(reports[index].ID)); id != "" {
		return id, true
	}
	return strconv.Itoa(index + 1), true
}

// Station is an aid centre, identified by its name.
type Station string

// MentalHealthStatus is the answer of the mental-health availability check.
type MentalHealthStatus struct {
	Available  bool `json:"available"`
	Configured bool `json:"configured"`
}

// UserType is the role a login resolves to.
type UserType string

const (
	UserTypeGovernment UserType = "gov"
	UserTypePublic     UserType = "non-gov"
)

// LoginResult is the response of POST /login.
type LoginResult struct {
	Success  bool     `json:"success"`
	UserType UserType `json:"user_type"`
}

// ReportSubmission is the payload of POST /api/file-report.
type ReportSubmission struct {
	DisasterType string `json:"disaster_type"`
	Details      string `json:"details"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

// Acknowledgement is the generic {success, message} body most mutations return.
type Acknowledgement struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type supplyRequest struct {
	Supply   string `json:"supply"`
	Quantity int    `json:"quantity"`
}

type stationRequest struct {
	Name string `json:"name"`
}

type configureRequest struct {
	APIKey string `json:"api_key"`
}

type messageRequest struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}
