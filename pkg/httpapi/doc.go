// Package httpapi exposes the submission pipeline and server-held wizard
// sessions over JSON HTTP. Requests under /api are checked against the
// embedded OpenAPI document before they reach a handler.
package httpapi
