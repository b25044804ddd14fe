//go:build tinygo

package main

import (
	"linkscope/app"
	"linkscope/hal"
)

func main() {
	app.Run(hal.New())
}
