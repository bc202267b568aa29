// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Session owns the client state and executes the effects its pure
// transitions request. The remaining services are thin and stateless.
package services
