// Package commands implements the devdeck command line: the API server and
// offline versions of the developer tools.
package commands
