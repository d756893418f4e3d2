package types

import "github.com/m-mizutani/goerr/v2"

// Version is the application version, overridden at build time via -ldflags
var Version = "0.1.0"

// AppName is the application name used for CLI metadata and User-Agent
const AppName = "iaget"

// DefaultBaseURL is the archive service endpoint used unless --base-url is given
const DefaultBaseURL = "https://archive.org"

// Error tags for classifying failures across package boundaries
var (
	ErrTagInvalidArgument = goerr.NewTag("invalid_argument")
	ErrTagRemote          = goerr.NewTag("remote")
)
