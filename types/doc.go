// Package types defines the shared wire and domain types used across the
// Unified Shopping List Alexa skill: Alexa list entities and facade request
// objects, skill-messaging envelopes, USL API records, callback events, and
// the Logger interface injected into every component.
//
// The package has no dependencies beyond the standard library so that every
// other package in the module can import it without cycles.
package types
