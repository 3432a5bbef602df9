// Package commands defines the vista CLI.
//
// Commands
//
//   - run       Start the list, search and password pipelines against a
//     simulated data source and drive them from stdin
//   - validate  Check a password against each validity rule
//
// # Run
//
// run reads one command per line from stdin:
//
//	search <text>     submit search text
//	password <text>   submit password text
//	state             print every slot
//	errors            print the recorded error history
//	quit              stop and exit
//
// Every slot update is written to stdout as one JSON object per line.
// Startup parameters come from --params (JSON, YAML or TOML), --set
// KEY=VALUE pairs and the --position/--category flags, in that order of
// precedence from lowest to highest. With --watch the params file is
// re-read on every write and the pipelines are restarted with the new
// parameters.
//
// Logs go to stderr so stdout stays machine-readable.
package commands
