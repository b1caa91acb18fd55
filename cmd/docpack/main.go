package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/benjaminschreck/go-docpack/pkg/docpack"
)

const version = "0.1.0"

func main() {
	// Optional .env file for DOCPACK_* settings; absence is not an error.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("docpack version %s\n", version)
	case "convert":
		if err := runConvert(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	case "inspect":
		if err := runInspect(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("docpack - Word document package toolkit")
	fmt.Println("\nUsage: docpack <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  convert <in> <out> [-keep-macros|-strip-macros]   Save a document, converting DOCM to DOCX unless told otherwise")
	fmt.Println("  inspect <file>                                    List the package's parts and relationships")
	fmt.Println("  version                                           Show version information")
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	keep := fs.Bool("keep-macros", false, "preserve VBA macros regardless of destination extension")
	strip := fs.Bool("strip-macros", false, "strip VBA macros regardless of destination extension")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("convert requires <in> and <out> arguments")
	}
	if *keep && *strip {
		return fmt.Errorf("-keep-macros and -strip-macros are mutually exclusive")
	}

	doc, err := docpack.OpenFile(fs.Arg(0))
	if err != nil {
		return err
	}

	var opts []docpack.SaveOption
	if *keep {
		opts = append(opts, docpack.PreserveMacros(true))
	}
	if *strip {
		opts = append(opts, docpack.PreserveMacros(false))
	}

	result, err := doc.Save(fs.Arg(1), opts...)
	if err != nil {
		return err
	}
	if result.MacrosStripped {
		fmt.Printf("stripped macros, wrote %s\n", result.Destination)
	} else {
		fmt.Printf("wrote %s\n", result.Destination)
	}
	return nil
}

func runInspect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("inspect requires a <file> argument")
	}

	doc, err := docpack.OpenFile(args[0])
	if err != nil {
		return err
	}
	pkg := doc.Package()

	fmt.Println("Parts:")
	for _, p := range pkg.Parts() {
		fmt.Printf("  %-40s %s (%d bytes)\n", p.PartName(), p.ContentType(), len(p.Blob()))
	}

	fmt.Println("Relationships:")
	for _, rel := range pkg.Relationships().All() {
		fmt.Printf("  /  %-6s %-60s -> %s\n", rel.ID(), rel.RelType(), rel.TargetRef())
	}
	for _, p := range pkg.Parts() {
		for _, rel := range p.Relationships().All() {
			mode := ""
			if rel.IsExternal() {
				mode = " (external)"
			}
			fmt.Printf("  %s  %-6s %-60s -> %s%s\n",
				p.PartName(), rel.ID(), rel.RelType(), rel.TargetRef(), mode)
		}
	}
	return nil
}
