// Package logging builds the zap logger shared by the command line tools.
//
//	logger := logging.New(logging.Options{Verbose: true})
//	defer logger.Sync()
//
// Console output is colored only when it goes to a terminal.
package logging
