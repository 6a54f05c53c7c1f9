// Package logger wraps zap to provide:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and configuration utilities,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// Every component accepts a context and logs through it, so scoped fields
// (component name, correlation ids) follow the call chain.
package logger
