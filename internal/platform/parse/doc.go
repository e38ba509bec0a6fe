// Package parse implements the store.EslStore contract against a
// Parse-Platform-style generic object store speaking JSON over HTTP.
// The object store assigns identities and creation timestamps; the client
// never invents either. All transport, serialization and platform failures
// are normalized into the store error taxonomy.
package parse
