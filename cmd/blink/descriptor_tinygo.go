//go:build tinygo

package main

import (
	"runtime/volatile"

	"blinkcode-go/appdesc"
)

// appDescriptor is evaluated by the compiler and emitted into its own
// section for flashing tools. Nothing reads it except retainDescriptor.
//
//go:section .rodata_desc
var appDescriptor = appdesc.New(descriptorFields())

// retainDescriptor performs a single volatile read so the optimiser and the
// linker keep the otherwise unreferenced record.
func retainDescriptor() {
	volatile.LoadUint32(&appDescriptor.MagicWord)
}
