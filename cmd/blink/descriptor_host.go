//go:build !tinygo

package main

import (
	"runtime"

	"blinkcode-go/appdesc"
)

var appDescriptor = appdesc.New(descriptorFields())

func retainDescriptor() { runtime.KeepAlive(&appDescriptor) }
