// Package server implements the HTTP surface of Showcase Drop: signup and
// login, item upload/list/delete, blob and front-end serving, plus health
// and metrics endpoints. It wires routes to the JSON-file store and the
// configured blob backend and provides lifecycle helpers used by tests and
// the production binary.
package server
