// Package usl is the client for the Unified Shopping List API.
//
// # Overview
//
// [Client] wraps a plain HTTP client with the behavior every USL call
// shares: a bearer credential on each request, JSON bodies, base URL and
// endpoint normalization, and bounded retries with a fixed delay when the
// API responds 429 or 500. On top of that sit the three typed calls the
// skill needs:
//
//   - [Client.Validate] checks whether a linked account's credential is
//     still accepted.
//   - [Client.PostListItemEvent] forwards a household-list event to the
//     USL event feed.
//   - [Client.CreateListItems] batch-creates items and reports the ids
//     the USL assigned to them.
//
// # Getting Started
//
// Create a [Client] with [New], supplying the API base URL, the account's
// access token, and any [Option] values you need:
//
//	client, err := usl.New(baseURL, accessToken,
//	    usl.WithMaxAttempts(3),
//	    usl.WithRetryDelay(5*time.Second),
//	)
//
// A Client carries one account's credential, so construct one per
// invocation rather than sharing it across users. Supply [WithHTTPClient]
// to inject a custom transport in tests.
//
// # Retry Behaviour
//
// A response whose status is in the retryable set is retried after the
// configured delay, up to the configured total number of attempts. Any
// other non-success status, or exhaustion of the attempts, surfaces as an
// error wrapping [StatusError] with the final response attached. Network
// errors are never retried.
package usl
