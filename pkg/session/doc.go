// Package session keeps server-held wizards between HTTP requests. Each
// session is a wizard.Snapshot stored under a uuid, serialized with
// MessagePack and evicted after a TTL.
package session
