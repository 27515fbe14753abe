// Package appdesc builds the firmware application descriptor: a fixed
// 256-byte, little-endian record that flashing and OTA tools read out of the
// image without running it.
//
// The record lives in its own linker section (SectionName). The firmware
// constructs it from constant strings so that TinyGo evaluates the whole
// initializer at compile time; nothing in the running program reads it back.
//
// Layout:
//
//	off  size  field
//	  0     4  MagicWord (0xABCD5432)
//	  4     4  SecureVersion
//	  8     8  ReservedA
//	 16    32  Version
//	 48    32  ProjectName
//	 80    16  BuildTime
//	 96    16  BuildDate
//	112    32  ToolchainVersion
//	144    32  ContentHash
//	176    80  ReservedB
package appdesc
