package api

import "context"

// GovernmentAPI is the backend surface the government dashboard uses.
type GovernmentAPI interface {
	ListInventory(ctx context.Context) ([]Supply, error)
	AddSupplies(ctx context.Context, supply string, quantity int) error
	ListReports(ctx context.Context) ([]Report, error)
	DeleteReport(ctx context.Context, ref string) error
	ListStations(ctx context.Context) ([]Station, error)
	AddStation(ctx context.Context, name string) error
	DeleteStation(ctx context.Context, name string) error
}

// PublicAPI is the backend surface the public (non-government) dashboard uses.
type PublicAPI interface {
	FileReport(ctx context.Context, r ReportSubmission) error
	ListAvailableSupplies(ctx context.Context) ([]Supply, error)
	RequestAid(ctx context.Context, supply string, quantity int) (string, error)
	ListHelpStations(ctx context.Context) ([]Station, error)
	MentalHealthAPI
}

// MentalHealthAPI is the opaque support-chat service.
type MentalHealthAPI interface {
	CheckMentalHealth(ctx context.Context) (MentalHealthStatus, error)
	ConfigureMentalHealth(ctx context.Context, apiKey string) error
	SendMentalHealthMessage(ctx context.Context, message string) (string, error)
}

// Authenticator opens a backend session.
type Authenticator interface {
	Login(ctx context.Context, name, password string) (UserType, error)
}

var (
	_ GovernmentAPI = (*Client)(nil)
	_ PublicAPI     = (*Client)(nil)
	_ Authenticator = (*Client)(nil)
)
