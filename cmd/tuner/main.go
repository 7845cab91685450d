// Command tuner is a terminal instrument tuner.
//
// Usage:
//
//	tuner listen [flags]
//	tuner analyze [flags] <file>
//	tuner tone [flags] <frequency>
//	tuner config
//	tuner devices
//
// Examples:
//
//	tuner listen --reference 440
//	tuner analyze --windows recording.wav
//	tuner tone 82.41 --noise 0.05
package main

import "github.com/cwbudde/algo-tuner/internal/cli"

func main() {
	cli.Execute()
}
