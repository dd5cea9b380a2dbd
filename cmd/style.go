package cmd

import "github.com/fatih/color"

var (
	errorStyle = color.New(color.FgRed, color.Bold)
	okStyle    = color.New(color.FgGreen)
	fileStyle  = color.New(color.FgCyan, color.Bold)
	posStyle   = color.New(color.FgBlue)
	classStyle = color.New(color.FgYellow)
)
