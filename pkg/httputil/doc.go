// Package httputil writes the responses of the karyoview HTTP server.
//
// # Responses
//
// [WriteJSON] encodes a value with a status code. [WriteError] maps coded
// errors from pkg/errors to HTTP statuses:
//
//	INVALID_INPUT, INVALID_MODE, INVALID_FORMAT  → 400
//	NOT_FOUND, FILE_NOT_FOUND                    → 404
//	NETWORK_ERROR                                → 502
//	UNSUPPORTED                                  → 501
//	anything else                                → 500
//
// The body is {"error": message, "code": code}. Internal errors hide their
// message behind the status text.
//
// # Conditional requests
//
// Rendered artifacts are deterministic for a dataset and its options, so
// [WriteArtifact] tags each body with a content hash. A request whose
// If-None-Match carries the same tag gets 304 Not Modified and no body.
package httputil
