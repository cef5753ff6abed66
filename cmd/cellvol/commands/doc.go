// Package commands defines the cellvol CLI.
//
// Commands
//
//   - export   Read a mesh volume listing and write one volume per line
//   - check    Validate the configuration and mesh without writing output
//   - version  Print the cellvol version
//
// Configuration comes from an optional gcfg config file; command-line flags
// overwrite whatever the file set. All user-facing failures are reported
// through lib.ExternalErrorf so the exit behavior is uniform across
// subcommands.
package commands
