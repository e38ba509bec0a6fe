// Package postgres implements the store.EslStore contract on top of a
// PostgreSQL database accessed through a pooled connection. Identity is
// generated client-side as a v4 UUID at save time; creation timestamps come
// from the database's now(). All failures are normalized into the store
// error taxonomy, chiefly store.ErrDatabase.
package postgres
