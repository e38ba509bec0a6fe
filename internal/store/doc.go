// Package store defines the persistence contract for ESL records and the
// error taxonomy shared by every backend implementation.
package store
