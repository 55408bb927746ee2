// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core code depends on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Connector: Fetches documents from a data source
//   - TokenProvider: Supplies API access tokens to connectors
//   - DocumentWriter: Persists rendered documents
//   - StateStore: Persists sync bookkeeping
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
