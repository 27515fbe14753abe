// Command appdesc inspects and produces firmware application descriptors.
//
//	appdesc gen -version 0.1.0 -project blink1 -o desc.bin
//	appdesc dump firmware.elf
//	appdesc stamp -o firmware.stamped.bin firmware.bin
//	appdesc verify firmware.stamped.bin
package main

import (
	"bytes"
	"debug/elf"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"blinkcode-go/appdesc"
	"blinkcode-go/errcode"
	"blinkcode-go/x/conv"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: appdesc <gen|dump|stamp|verify> [flags] [image]")
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	var err error
	switch args[0] {
	case "gen":
		err = cmdGen(args[1:], stdout, stderr)
	case "dump":
		err = cmdDump(args[1:], stdout, stderr)
	case "stamp":
		err = cmdStamp(args[1:], stdout, stderr)
	case "verify":
		err = cmdVerify(args[1:], stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
	if errors.Is(err, flag.ErrHelp) {
		return 2
	}
	if err != nil {
		fmt.Fprintln(stderr, "appdesc:", err)
		return 1
	}
	return 0
}

func cmdGen(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var f appdesc.Fields
	var secure uint
	fs.StringVar(&f.Version, "version", "0.1.0", "application version")
	fs.StringVar(&f.ProjectName, "project", "", "project name")
	fs.StringVar(&f.BuildTime, "time", "00:00:00", "build time")
	fs.StringVar(&f.BuildDate, "date", "2024-01-01", "build date")
	fs.StringVar(&f.ToolchainVersion, "toolchain", "0.0.0", "toolchain version")
	fs.UintVar(&secure, "secure", 0, "secure (anti-rollback) version")
	out := fs.String("o", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f.SecureVersion = uint32(secure)

	b, err := appdesc.New(f).MarshalBinary()
	if err != nil {
		return err
	}
	if *out == "" {
		_, err = stdout.Write(b)
		return err
	}
	return os.WriteFile(*out, b, 0o644)
}

func cmdDump(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("dump: need exactly one image")
	}
	img, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	d, where, err := locate(img)
	if err != nil {
		return err
	}
	printDescriptor(stdout, &d, where)
	return nil
}

func cmdStamp(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("stamp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("o", "", "output file (default: overwrite input)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("stamp: need exactly one image")
	}
	in := fs.Arg(0)
	img, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	off, _, err := offset(img)
	if err != nil {
		return err
	}
	sum, err := appdesc.StampAt(img, off)
	if err != nil {
		return err
	}
	dst := *out
	if dst == "" {
		dst = in
	}
	if err := os.WriteFile(dst, img, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "content_hash %s\n", hex.EncodeToString(sum[:]))
	return nil
}

func cmdVerify(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("verify: need exactly one image")
	}
	img, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	off, _, err := offset(img)
	if err != nil {
		return err
	}
	ok, err := appdesc.VerifyAt(img, off)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("verify: content hash missing or mismatched")
	}
	fmt.Fprintln(stdout, "ok")
	return nil
}

// offset finds the descriptor's file offset. ELF files are resolved through
// the .rodata_desc section header; anything else is scanned.
func offset(img []byte) (int, string, error) {
	if f, err := elf.NewFile(bytes.NewReader(img)); err == nil {
		defer f.Close()
		sec := f.Section(appdesc.SectionName)
		if sec == nil {
			return 0, "", &errcode.E{C: errcode.NotFound, Op: "elf", Msg: "no " + appdesc.SectionName + " section"}
		}
		if sec.Type == elf.SHT_NOBITS || sec.Size < appdesc.Size || sec.Offset+sec.Size > uint64(len(img)) {
			return 0, "", &errcode.E{C: errcode.ShortBuffer, Op: "elf", Msg: appdesc.SectionName + " has no room for a descriptor"}
		}
		return int(sec.Offset), fmt.Sprintf("section %s (offset 0x%x)", appdesc.SectionName, sec.Offset), nil
	}
	off, err := appdesc.Find(img)
	if err != nil {
		return 0, "", err
	}
	return off, fmt.Sprintf("offset 0x%x", off), nil
}

func locate(img []byte) (appdesc.Descriptor, string, error) {
	off, where, err := offset(img)
	if err != nil {
		return appdesc.Descriptor{}, "", err
	}
	d, err := appdesc.Decode(img[off:])
	return d, where, err
}

func printDescriptor(w io.Writer, d *appdesc.Descriptor, where string) {
	var hx [8]byte
	fmt.Fprintf(w, "descriptor at %s\n", where)
	fmt.Fprintf(w, "  magic_word        0x%s\n", conv.U32Hex(hx[:], d.MagicWord))
	fmt.Fprintf(w, "  secure_version    %d\n", d.SecureVersion)
	fmt.Fprintf(w, "  version           %s\n", d.VersionString())
	fmt.Fprintf(w, "  project_name      %s\n", d.ProjectNameString())
	fmt.Fprintf(w, "  build_time        %s\n", d.BuildTimeString())
	fmt.Fprintf(w, "  build_date        %s\n", d.BuildDateString())
	fmt.Fprintf(w, "  toolchain_version %s\n", d.ToolchainVersionString())
	if d.HashSet() {
		fmt.Fprintf(w, "  content_hash      %s\n", hex.EncodeToString(d.ContentHash[:]))
	} else {
		fmt.Fprintf(w, "  content_hash      (unset)\n")
	}
}
