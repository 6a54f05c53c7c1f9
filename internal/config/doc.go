// Package config defines the settings shared by the sentry binaries and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the MQTT broker connection, the chat gateway
// credentials, the recipient set and the safety thresholds.
package config
