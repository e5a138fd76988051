// Command pixelsteg hides text in the green channel of an image and reads it
// back.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ericlevine/pixelsteg"
	"github.com/ericlevine/pixelsteg/charset"
	"github.com/ericlevine/pixelsteg/envelope"
	"github.com/ericlevine/pixelsteg/imageio"
)

const usageText = `Usage:
  pixelsteg capacity [flags] <image>
  pixelsteg encode [flags] <image> [text|-]
  pixelsteg decode [flags] <image>

Hide text in an image (PNG, BMP, TIFF, QOI, JPEG, GIF input) and recover it.
Without text, or with "-", encode reads it from standard input and drops one
trailing newline.
Output images are written as PNG, BMP, TIFF or QOI. Run
"pixelsteg <command> -h" for the flags of a command.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usageText)
		return 1
	}
	var err error
	switch cmd := args[0]; cmd {
	case "capacity":
		err = runCapacity(args[1:], stdout, stderr)
	case "encode":
		err = runEncode(args[1:], stdin, stdout, stderr)
	case "decode":
		err = runDecode(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usageText)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usageText)
		return 1
	}
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s: error: %v\n", args[0], err)
		return 1
	}
	return 0
}

// newFlagSet creates the flag set shared by all commands.
func newFlagSet(name, synopsis string, stderr io.Writer) (*flag.FlagSet, *int) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	ppb := fs.Int("ppb", pixelsteg.DefaultPixelsPerByte, "pixels used to carry one byte")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: pixelsteg %s\n\nFlags:\n", synopsis)
		fs.PrintDefaults()
	}
	return fs, ppb
}

func newLogger(verbose bool, stderr io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func runCapacity(args []string, stdout, stderr io.Writer) error {
	fs, ppb := newFlagSet("capacity", "capacity [flags] <image>", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected one image")
	}
	if *ppb <= 0 {
		return fmt.Errorf("-ppb %d: %w", *ppb, pixelsteg.ErrInvalidConfiguration)
	}
	img, _, err := imageio.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	b := img.Bounds()
	fmt.Fprintln(stdout, pixelsteg.Capacity(b.Dx(), b.Dy(), *ppb))
	return nil
}

func runEncode(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, ppb := newFlagSet("encode", "encode [flags] <image> [text|-]", stderr)
	out := fs.String("o", "", "output image (default <image>.steg.png)")
	cs := fs.String("charset", charset.ASCII.Name, "character set of the hidden text")
	password := fs.String("password", "", "encrypt the text with this password")
	compress := fs.Bool("compress", false, "compress the text before hiding it")
	verbose := fs.Bool("v", false, "log timing information")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return errors.New("expected an image and optional text")
	}
	log := newLogger(*verbose, stderr)

	src := fs.Arg(0)
	dst := *out
	if dst == "" {
		dst = strings.TrimSuffix(src, filepath.Ext(src)) + ".steg.png"
	}
	if _, err := imageio.FormatFor(dst); err != nil {
		return err
	}

	text := fs.Arg(1)
	if fs.NArg() == 1 || text == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return err
		}
		// decode prints a newline of its own
		text = strings.TrimSuffix(string(data), "\n")
		text = strings.TrimSuffix(text, "\r")
	}

	img, _, err := imageio.Load(src)
	if err != nil {
		return err
	}
	grid := pixelsteg.NewGrid(img)

	start := time.Now()
	var n int
	if *password == "" && !*compress {
		n = len([]rune(text))
		err = pixelsteg.EncodeText(grid, text, *cs, *ppb)
	} else {
		var payload []byte
		payload, err = charset.Encode(text, *cs)
		if err != nil {
			return err
		}
		payload, err = envelope.Seal(payload, envelope.Options{Password: *password, Compress: *compress})
		if err != nil {
			return err
		}
		n = len(payload)
		err = pixelsteg.Encode(grid, payload, *ppb)
	}
	if err != nil {
		return err
	}
	log.Info("encoded", "file", src, "bytes", n,
		"capacity", pixelsteg.Capacity(grid.Width(), grid.Height(), *ppb),
		"ppb", *ppb, "elapsed", time.Since(start))

	if err := imageio.Save(dst, img); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Encoded %s → %s\n", src, dst)
	return nil
}

func runDecode(args []string, stdout, stderr io.Writer) error {
	fs, ppb := newFlagSet("decode", "decode [flags] <image>", stderr)
	cs := fs.String("charset", "", "character set of the hidden text (default: guess)")
	password := fs.String("password", "", "decrypt the text with this password")
	sealed := fs.Bool("envelope", false, "the text was hidden with -compress or -password")
	verbose := fs.Bool("v", false, "log timing information")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected one image")
	}
	log := newLogger(*verbose, stderr)

	img, _, err := imageio.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	grid := pixelsteg.NewGrid(img)

	start := time.Now()
	var text string
	if *password == "" && !*sealed {
		text, err = pixelsteg.DecodeText(grid, *cs, *ppb)
		if err != nil {
			return err
		}
	} else {
		payload, err := pixelsteg.Decode(grid, *ppb)
		if err != nil {
			return err
		}
		plain, err := envelope.Open(payload, envelope.Options{Password: *password})
		if err != nil {
			return err
		}
		if *cs == "" {
			text = charset.Guess(plain).Decode(plain)
		} else if text, err = charset.Decode(plain, *cs); err != nil {
			return err
		}
	}
	log.Info("decoded", "file", fs.Arg(0), "bytes", len(text), "ppb", *ppb, "elapsed", time.Since(start))

	fmt.Fprintln(stdout, text)
	return nil
}
