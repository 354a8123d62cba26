// Command topicquery runs a topic query against the database and prints
// one record per visible topic followed by a stats record.
//
// Usage:
//
//	topicquery [--format text|json] [--user <account>] <query>
//	topicquery token --account <uuid> [--ttl 1h]
//
// Flags may also be set through TOPICQUERY_* environment variables.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
