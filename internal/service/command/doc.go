// Package command implements the authorization-gated operator command layer.
//
// Every inbound chat message is checked against the recipient set first;
// unauthorized senders get no response of any kind. Authorized commands map
// 1:1 onto state document mutations with fixed confirmation texts, except
// for the read-only status report and the help text.
package command
