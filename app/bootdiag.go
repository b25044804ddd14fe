//go:build !(tinygo && bootdebug)

package app

import "linkscope/hal"

func bootStep(string) {}

func bootDiagStart(hal.HAL) {}
