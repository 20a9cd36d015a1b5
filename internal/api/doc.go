// Package api is the typed HTTP client for the relief coordination backend.
//
// Every call is a single request judged by its status code: 2xx is success,
// anything else becomes an *APIError carrying the {message} body when the
// backend sent one. There are no retries. A session cookie obtained through
// Login is kept in the client's cookie jar and sent with every later call.
//
// The dashboards depend on the narrow GovernmentAPI and PublicAPI interfaces
// rather than on *Client, so tests can substitute in-memory fakes.
package api
