// Package chat is the boundary to the external chat gateway.
//
// Outbound delivery is a REST sendMessage call guarded by a circuit breaker;
// inbound traffic arrives as Update payloads on the HTTP webhook. Delivery
// semantics (retries, ordering) belong to the gateway, not to this module.
package chat
