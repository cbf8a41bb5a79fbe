// Package http implements the HTTP handlers of the analysis service. It is
// a thin layer between transport and business logic: handlers parse and
// validate requests, delegate to the service layer, and render responses.
//
// # Request Flow
//
//	HTTP Request → Chi Router → Middleware → Handler → AnalysisService
//	                                             ↓
//	HTTP Response ← render.Render ←──────────────┘
//
// Errors are rendered through the shared apierrors types so every failure
// has the same JSON shape.
package http
