package main

import "github.com/oshokin/transformer-sentry/cmd/sentry-simulator/cmd"

func main() {
	cmd.Execute()
}
