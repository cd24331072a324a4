// Package grocery wires the grocery API client from a single options structure.
//
// NewClient builds the logger, credential store, rate limiter, metrics, the
// authenticated request executor and the auth service, so that a process holds
// exactly one instance of each and passes it explicitly to its callers.
//
// Example:
//
//	options, _ := grocery.LoadClientOptions(ctx, "/etc/grocery/client.yaml")
//	cli, _ := grocery.NewClient(ctx, options)
//	response, err := cli.Auth.Login(ctx, &schema.LoginRequest{Username: "alice", Password: "secret123"})
package grocery
