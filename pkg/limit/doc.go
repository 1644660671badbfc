// Package limit defines the resource request handed from the command line to
// the supervisor: an optional CPU share, an optional memory limit and the
// command vector to run.
package limit
