package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"reliefctl/internal/api"
	"reliefctl/internal/testing/fakeapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, srv *fakeapi.Server) *api.Client {
	t.Helper()
	c, err := api.NewClient(api.Options{BaseURL: srv.URL})
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := api.NewClient(api.Options{})
	assert.Error(t, err)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c, err := api.NewClient(api.Options{BaseURL: "http://relief.example/"})
	require.NoError(t, err)
	assert.Equal(t, "http://relief.example", c.BaseURL())
}

func TestClient_LoginKeepsSessionCookie(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	c := newClient(t, srv)
	ctx := context.Background()

	userType, err := c.Login(ctx, "Ada", "gov")
	require.NoError(t, err)
	assert.Equal(t, api.UserTypeGovernment, userType)

	_, err = c.ListInventory(ctx)
	require.NoError(t, err)

	calls := srv.CallsTo("/api/inventory")
	require.Len(t, calls, 1)
	assert.Equal(t, "gov:Ada", calls[0].Cookie)
}

func TestClient_LoginPublicUser(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	c := newClient(t, srv)

	userType, err := c.Login(context.Background(), "Bo", "anything")
	require.NoError(t, err)
	assert.Equal(t, api.UserTypePublic, userType)
}

func TestClient_SendsRequestID(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	c := newClient(t, srv)
	ctx := context.Background()

	_, err := c.ListReports(ctx)
	require.NoError(t, err)
	_, err = c.ListReports(ctx)
	require.NoError(t, err)

	calls := srv.CallsTo("/api/reports")
	require.Len(t, calls, 2)
	assert.NotEmpty(t, calls[0].RequestID)
	assert.NotEqual(t, calls[0].RequestID, calls[1].RequestID)
}

func TestClient_ListsKeepBackendOrder(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.Inventory = []api.Supply{
		{Name: "water", Quantity: 10, Unit: "litres"},
		{Name: "blankets", Quantity: 3},
	}
	srv.Stations = []string{"North Camp", "South Camp"}
	c := newClient(t, srv)
	ctx := context.Background()

	inv, err := c.ListInventory(ctx)
	require.NoError(t, err)
	require.Len(t, inv, 2)
	assert.Equal(t, "water", inv[0].Name)
	assert.Equal(t, "litres", inv[0].DisplayUnit())
	assert.Equal(t, api.DefaultUnit, inv[1].DisplayUnit())

	stations, err := c.ListStations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []api.Station{"North Camp", "South Camp"}, stations)
}

func TestClient_AddSuppliesPayload(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	c := newClient(t, srv)

	require.NoError(t, c.AddSupplies(context.Background(), "rice", 25))

	calls := srv.CallsTo("/api/add-supplies")
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"supply":"rice","quantity":25}`, calls[0].Body)
}

func TestClient_DeleteStationEscapesName(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.Stations = []string{"Camp A/B"}
	c := newClient(t, srv)

	require.NoError(t, c.DeleteStation(context.Background(), "Camp A/B"))

	assert.Len(t, srv.CallsTo("/api/delete-station/Camp%20A%2FB"), 1)
	assert.Empty(t, srv.Stations)
}

func TestClient_DeleteReportByPosition(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.Reports = []api.Report{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	c := newClient(t, srv)

	ref, ok := api.ReportRef(srv.Reports, 1)
	require.True(t, ok)
	require.NoError(t, c.DeleteReport(context.Background(), ref))

	assert.Len(t, srv.CallsTo("/api/delete-report/2"), 1)
	require.Len(t, srv.Reports, 2)
	assert.Equal(t, "a", srv.Reports[0].Name)
	assert.Equal(t, "c", srv.Reports[1].Name)
}

func TestClient_AddStationServerMessage(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.Stations = []string{"North Camp"}
	c := newClient(t, srv)

	err := c.AddStation(context.Background(), "North Camp")
	require.Error(t, err)

	var apiErr *api.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	msg, ok := api.ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Station already exists.", msg)
}

func TestClient_RequestAid(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.Available = []api.Supply{{Name: "water", Quantity: 5}}
	c := newClient(t, srv)
	ctx := context.Background()

	msg, err := c.RequestAid(ctx, "water", 2)
	require.NoError(t, err)
	assert.Equal(t, "Truck 1 dispatched.", msg)

	_, err = c.RequestAid(ctx, "water", 4)
	require.Error(t, err)
	serverMsg, ok := api.ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Only 3 available.", serverMsg)
}

func TestClient_FailureWithoutBody(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.Fail("/api/inventory", fakeapi.Failure{Status: http.StatusInternalServerError})
	c := newClient(t, srv)

	_, err := c.ListInventory(context.Background())
	require.Error(t, err)
	_, ok := api.ServerMessage(err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_TransportError(t *testing.T) {
	srv := fakeapi.New()
	url := srv.URL
	srv.Close()

	c, err := api.NewClient(api.Options{BaseURL: url})
	require.NoError(t, err)

	_, err = c.ListStations(context.Background())
	require.Error(t, err)
	var apiErr *api.APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "GET /api/stations")
}

func TestClient_MentalHealthFlow(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	c := newClient(t, srv)
	ctx := context.Background()

	status, err := c.CheckMentalHealth(ctx)
	require.NoError(t, err)
	assert.True(t, status.Available)
	assert.False(t, status.Configured)

	err = c.ConfigureMentalHealth(ctx, "")
	msg, ok := api.ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "API key required.", msg)

	require.NoError(t, c.ConfigureMentalHealth(ctx, "sk-test"))
	status, err = c.CheckMentalHealth(ctx)
	require.NoError(t, err)
	assert.True(t, status.Configured)

	reply, err := c.SendMentalHealthMessage(ctx, "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "I'm here to listen.", reply)

	calls := srv.CallsTo("/api/mental-health/message")
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"message":"hello"}`, calls[0].Body)
}

func TestClient_EmptyChatMessageSendsNothing(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	c := newClient(t, srv)

	_, err := c.SendMentalHealthMessage(context.Background(), "   ")
	assert.ErrorIs(t, err, api.ErrEmptyMessage)
	assert.Empty(t, srv.Calls())
}

func TestClient_FileReportPayload(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	c := newClient(t, srv)

	err := c.FileReport(context.Background(), api.ReportSubmission{
		DisasterType: "flood",
		Details:      "river burst its banks",
		Address:      "1 High St",
		City:         "Leeds",
		Country:      "UK",
	})
	require.NoError(t, err)

	calls := srv.CallsTo("/api/file-report")
	require.Len(t, calls, 1)
	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(calls[0].Body), &body))
	assert.Equal(t, "flood", body["disaster_type"])
	assert.Equal(t, "Leeds", body["city"])
}
