// The uslctl command is an operator CLI for the Unified Shopping List
// Alexa skill. It can validate a USL credential, inspect persisted
// callback responses and route ad-hoc skill messages without going
// through the Alexa messaging channel.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
