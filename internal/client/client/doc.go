// Package client talks to the Mercury server over gRPC. It keeps the access
// token returned by Login and attaches it to every later call, and it checks
// reachability through the standard health service.
package client
