// Package services implements the business logic layer between the HTTP
// handlers and the analytics engine.
//
// # Architecture
//
// Services follow these principles:
//
//	1. Dependency injection for loose coupling
//	2. Context propagation for cancellation
//	3. Cross-cutting concerns (logging, metrics) handled once here
//
// The AnalysisService owns the run registry: every analysis gets a uuid,
// its progress is fanned out to the websocket hub, and the finished report
// stays retrievable by id until the service is restarted.
package services
