package cli

import "github.com/ardnew/roll/cli/cmd"

var (
	ErrEnv    = cmd.NewError("read environment")
	ErrConfig = cmd.NewError("read configuration file")
)
