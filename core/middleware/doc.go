// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting every endpoint.
//   - rayid: a unique Request ID (RayID) per request, stored in the context locals and
//     echoed in the X-Ray-ID response header for tracing.
package middleware
