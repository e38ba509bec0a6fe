// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the persistence contract, translating HTTP concerns into record
// lifecycle operations.
package api
