// Package store provides soft-failing access to the shared sensor state
// document.
//
// The document lives as a retained JSON payload on an MQTT topic: the sensor
// feed publishes measurement fields, the command dispatcher publishes control
// fields, and the gateway keeps the latest copy cached so reads never block.
// Both Read and Write swallow transport faults: a monitoring loop must never
// crash on a transient broker outage, and each poll cycle is its own retry.
package store
