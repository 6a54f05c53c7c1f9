// Command transformer-sentry runs the safety monitor process.
package main

import "github.com/oshokin/transformer-sentry/cmd/sentry/cmd"

func main() {
	cmd.Execute()
}
