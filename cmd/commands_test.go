package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"reliefctl/internal/api"
	"reliefctl/internal/config"
	"reliefctl/internal/testing/fakeapi"
)

// runRoot executes the root command against a fake backend and resets the
// package-level flags afterwards.
func runRoot(t *testing.T, backend *fakeapi.Server, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, env := range []string{config.EnvBaseURL, config.EnvName, config.EnvPassword, config.EnvLogLevel} {
		t.Setenv(env, "")
	}
	t.Cleanup(func() {
		rootConfigPath, rootBaseURL, rootName, rootPassword, rootDebug = "", "", "", "", false
		getFlags, overviewFlags, mutateFlags = toolFlags{}, toolFlags{}, toolFlags{}
		deleteYes = false
		reportType, reportDetails, reportAddress, reportCity, reportCountry = "", "", "", "", ""
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--base-url", backend.URL))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGetStationsJSON(t *testing.T) {
	backend := fakeapi.New()
	defer backend.Close()
	backend.Stations = []string{"Camp A", "Camp B"}

	out, err := runRoot(t, backend, "", "get", "stations", "-o", "json")
	if err != nil {
		t.Fatalf("get stations failed: %v", err)
	}

	var got struct {
		Stations []string `json:"stations"`
		Total    int      `json:"total"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Total != 2 || len(got.Stations) != 2 {
		t.Errorf("Unexpected stations output: %+v", got)
	}
}

func TestGetUnknownResource(t *testing.T) {
	backend := fakeapi.New()
	defer backend.Close()

	_, err := runRoot(t, backend, "", "get", "volunteers")
	if err == nil || !strings.Contains(err.Error(), "unknown resource") {
		t.Errorf("Expected unknown resource error, got %v", err)
	}
	if len(backend.Calls()) != 0 {
		t.Errorf("Expected no backend calls, got %d", len(backend.Calls()))
	}
}

func TestGetLogsInWithPassword(t *testing.T) {
	backend := fakeapi.New()
	defer backend.Close()

	_, err := runRoot(t, backend, "", "get", "inventory", "--name", "Ada", "--password", "gov", "-o", "json")
	if err != nil {
		t.Fatalf("get inventory failed: %v", err)
	}

	calls := backend.CallsTo("/api/inventory")
	if len(calls) != 1 || calls[0].Cookie != "gov:Ada" {
		t.Errorf("Expected one inventory call with the session cookie, got %+v", calls)
	}
}

func TestOverviewCommand(t *testing.T) {
	backend := fakeapi.New()
	defer backend.Close()
	backend.Inventory = []api.Supply{{Name: "WATER", Quantity: 3}}
	backend.Stations = []string{"Camp A"}

	out, err := runRoot(t, backend, "", "overview", "-o", "json")
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}

	var got struct {
		Resources []struct {
			Resource string `json:"resource"`
			Total    int    `json:"total"`
		} `json:"resources"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	totals := make(map[string]int)
	for _, r := range got.Resources {
		totals[r.Resource] = r.Total
	}
	if totals["inventory"] != 1 || totals["stations"] != 1 || totals["reports"] != 0 {
		t.Errorf("Unexpected totals: %v", totals)
	}
}

func TestAddSupplyRejectsNonNumericQuantity(t *testing.T) {
	backend := fakeapi.New()
	defer backend.Close()

	_, err := runRoot(t, backend, "", "add-supply", "WATER", "lots")
	if err == nil || !strings.Contains(err.Error(), "invalid quantity") {
		t.Errorf("Expected invalid quantity error, got %v", err)
	}
	if len(backend.CallsTo("/api/add-supplies")) != 0 {
		t.Error("Expected no add-supplies call")
	}
}

func TestRequestAidRejectsNegativeQuantity(t *testing.T) {
	backend := fakeapi.New()
	defer backend.Close()

	_, err := runRoot(t, backend, "", "request-aid", "WATER", "-1")
	if err == nil {
		t.Fatal("Expected an error for a negative quantity")
	}
	expected := `invalid quantity "-1": must be a positive whole number`
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
	if len(backend.CallsTo("/api/request-aid")) != 0 {
		t.Error("Expected no request-aid call")
	}
}

func TestQuantityFlagErrorKeepsOtherFlagErrors(t *testing.T) {
	original := errors.New("unknown shorthand flag: 'x' in -x")
	if got := quantityFlagError(requestAidCmd, original); got != original {
		t.Errorf("Expected the original error, got %v", got)
	}
	other := errors.New("unknown flag: --bogus")
	if got := quantityFlagError(requestAidCmd, other); got != other {
		t.Errorf("Expected the original error, got %v", got)
	}
}

func TestDeleteStationAbortedWithoutConfirmation(t *testing.T) {
	backend := fakeapi.New()
	defer backend.Close()
	backend.Stations = []string{"Camp A"}

	out, err := runRoot(t, backend, "n\n", "delete-station", "Camp A")
	if err != nil {
		t.Fatalf("delete-station failed: %v", err)
	}
	if !strings.Contains(out, "Aborted.") {
		t.Errorf("Expected abort message, got %q", out)
	}
	if len(backend.Stations) != 1 {
		t.Errorf("Expected station to be kept, got %v", backend.Stations)
	}
}

func TestDeleteStationConfirmed(t *testing.T) {
	backend := fakeapi.New()
	defer backend.Close()
	backend.Stations = []string{"Camp A"}

	out, err := runRoot(t, backend, "", "delete-station", "Camp A", "--yes")
	if err != nil {
		t.Fatalf("delete-station failed: %v", err)
	}
	if !strings.Contains(out, "Deleted aid centre 'Camp A'") {
		t.Errorf("Unexpected output %q", out)
	}
	if len(backend.Stations) != 0 {
		t.Errorf("Expected station to be deleted, got %v", backend.Stations)
	}
}

func TestRequestAidServerMessage(t *testing.T) {
	backend := fakeapi.New()
	defer backend.Close()
	backend.Available = []api.Supply{{Name: "WATER", Quantity: 5}}

	out, err := runRoot(t, backend, "", "request-aid", "WATER", "2")
	if err != nil {
		t.Fatalf("request-aid failed: %v", err)
	}
	if strings.TrimSpace(out) != "Truck 1 dispatched." {
		t.Errorf("Unexpected output %q", out)
	}
}

func TestFileReportRequiresType(t *testing.T) {
	backend := fakeapi.New()
	defer backend.Close()

	_, err := runRoot(t, backend, "", "file-report", "--details", "river burst")
	if err == nil {
		t.Error("Expected an error without --type")
	}
}

func TestMCPServerRejectsUnknownTransport(t *testing.T) {
	backend := fakeapi.New()
	defer backend.Close()

	_, err := runRoot(t, backend, "", "mcp-server", "--transport", "pigeon")
	if err == nil || !strings.Contains(err.Error(), "unsupported transport") {
		t.Errorf("Expected unsupported transport error, got %v", err)
	}
}

func TestAskYesNo(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if got := askYesNo(strings.NewReader(tt.answer), &out, "Delete?"); got != tt.want {
			t.Errorf("askYesNo(%q) = %v, want %v", tt.answer, got, tt.want)
		}
		if !strings.HasPrefix(out.String(), "Delete? [y/N] ") {
			t.Errorf("Unexpected prompt %q", out.String())
		}
	}
}
