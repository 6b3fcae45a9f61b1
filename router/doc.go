// Package router dispatches inbound skill messages to the Alexa List
// Management API.
//
// # Overview
//
// A skill message carries a batch of generic CRUD requests, each naming an
// operation and an object type. The [Router] maps every recognized
// (operation, object type) pair onto the matching List Management facade
// method, collects the results into a uniform response envelope, and
// optionally persists that envelope to the event store so the message's
// sender can poll for it out of band.
//
// Entries the router does not recognize are skipped without failing the
// batch. Expected host errors (wrong ids, version conflicts, throttling)
// mark the batch unsuccessful but let sibling entries run; a transport
// fault aborts the batch with a fixed diagnostic detail.
//
// # Getting Started
//
//	rt, err := router.New(listClient, store, logger,
//		router.WithCallbackTTL(15*time.Minute),
//		router.WithNotifier(queue),
//	)
//	if err != nil {
//		return err
//	}
//
//	response := rt.Route(ctx, msg)
package router
