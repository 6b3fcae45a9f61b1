// Package translator turns Alexa household-list notifications into Unified
// Shopping List syncs.
//
// For an ItemsCreated event the [Translator] waits a short debounce delay,
// reads the current list, narrows the event's item ids down to the ones
// that are still active, batch-creates those items in the USL, and marks
// every item the USL confirms as completed in the Alexa list. Completing
// (rather than deleting) gives the user a visible confirmation in the Alexa
// app while staying reversible through the normal completed-items UI.
//
// Failures follow the "host re-fires naturally" philosophy: a failed list
// read or USL batch drops the event silently, and a failed per-item
// completion is skipped so the remaining items still get marked. Version
// conflicts are final for the item in question; the next event for that
// list retries the work with fresh versions.
//
// ItemsUpdated and ItemsDeleted events are forwarded to the USL event feed
// for audit purposes only.
package translator
