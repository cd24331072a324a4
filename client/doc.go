// Package client implements the authenticated request executor of the grocery API.
//
// Every request carries the stored access token as a Bearer credential. When the
// API challenges a request with `401 Unauthorized` the client exchanges the stored
// refresh token for a new token pair, stores it and replays the original request
// exactly once; a second 401 is reported as ErrUnauthorized.
//
// Business level failures (validation, domain errors) are not Go errors: they
// travel inside the decoded schema.Response envelope. Errors returned by the
// client are *RequestError values of kind Transport, Decoding or Unauthorized.
//
// Example:
//
//	credentials := store.NewSecretStore("/var/lib/grocery")
//	cli := client.New(client.DefaultBaseURL, client.WithStore(credentials))
//	resp, err := client.Send[schema.User](ctx, cli, client.NewRequest(http.MethodGet, schema.PathCurrentUser, nil, nil))
package client
