package main

// Exit codes shared by all subcommands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file, unreadable variable file)
	ExitDataError   = 3 // Data error (malformed JSON, import conflict)
	ExitNotFound    = 4 // Variable not found (get without default, delete of missing key)
)
