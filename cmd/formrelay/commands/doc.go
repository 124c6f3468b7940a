// Package commands defines the formrelay CLI.
//
// Commands
//
//   - serve    Run the relay HTTP server
//   - send     Submit one contact form to a relay
//   - config   Print the effective configuration, secrets masked
//
// Configuration is loaded per command from --config (YAML), --env-file
// (dotenv, default .env) and the process environment, in that order.
package commands
