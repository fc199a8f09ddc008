// Package openapi embeds the OpenAPI 3 description of the contact HTTP API
// and validates incoming requests against it with kin-openapi. The document
// is served verbatim at /openapi.yaml.
package openapi
