// Package cli implements the grocery command line client.
//
// Global options configure the API client (see grocery.ClientOptions), commands
// map one to one to the authentication operations:
//
//	grocery --store.kind=file --store.location=~/.grocery/tokens.json login -n alice -p secret123
//	grocery status
//	grocery serve-mock --addr :8080
package cli
