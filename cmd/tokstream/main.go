package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/saylorsolutions/tokstream/pkg/lexer"
	"github.com/saylorsolutions/tokstream/pkg/stream"
	"github.com/saylorsolutions/tokstream/pkg/token"
	"github.com/saylorsolutions/tokstream/plugin/file"
	"github.com/saylorsolutions/tokstream/plugin/store"
)

func main() {
	log := hclog.Default()
	if len(os.Args) <= 1 {
		usage()
		return
	}
	args := os.Args[1:]
	switch args[0] {
	case "dump":
		if len(args) < 2 {
			exitError("No file specified")
		}
		if err := doDump(log, args[1]); err != nil {
			exitError("Failed to dump tokens: %v", err)
		}
	case "follow":
		if len(args) < 2 {
			exitError("No file specified")
		}
		if err := doFollow(log, args[1]); err != nil {
			exitError("Failed to follow file: %v", err)
		}
	case "record":
		if len(args) < 4 {
			exitError("Expected FILE, DB, and TABLE arguments")
		}
		if err := doRecord(log, args[1], args[2], args[3]); err != nil {
			exitError("Failed to record tokens: %v", err)
		}
		fmt.Println("Token stream recorded successfully")
	case "help":
		usage()
	default:
		exitError("Unrecognized command: '%s'", args[0])
	}
}

func doDump(log hclog.Logger, filename string) error {
	lx, err := lexer.File(filename)
	if err != nil {
		return err
	}
	return printTokens(stream.New(lx.Source(), stream.WithLogger(log)))
}

func doFollow(log hclog.Logger, filename string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	src, err := file.CtxSource(ctx, filename)
	if err != nil {
		return err
	}
	return printTokens(stream.NewSize(src, 64, stream.WithLogger(log)))
}

// printTokens walks the whole stream through the window with one token of
// lookahead, which keeps memory constant no matter how long the input is.
func printTokens(w *stream.Window) error {
	for {
		tok, err := w.LT(1)
		if err != nil {
			return err
		}
		if tok.Type() == token.EOF {
			return nil
		}
		fmt.Printf("%6d %-8s %q\n", w.Index(), tok.Type(), tok.Text())
		if err := w.Consume(); err != nil {
			if errors.Is(err, stream.ErrProtocolViolation) {
				return nil
			}
			return err
		}
	}
}

func doRecord(log hclog.Logger, filename, db, table string) error {
	lx, err := lexer.File(filename)
	if err != nil {
		return err
	}
	st, err := store.NewStore(log, db)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("Failed to close token store", "error", err)
		}
	}()
	return st.Record(context.Background(), lx.Source(), table)
}

func exitError(format string, args ...any) {
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	fmt.Printf("Error: "+format, args...)
	usage()
	os.Exit(-1)
}

func usage() {
	text := `
tokstream inspects and records token streams.

  tokstream help
  tokstream dump FILE
  tokstream follow FILE
  tokstream record FILE DB TABLE

The 'help' subcommand will print this usage information.
The 'dump' subcommand will lex FILE and print every token in stream order.
The 'follow' subcommand will tail FILE, printing tokens as lines are appended. Interrupt to stop.
The 'record' subcommand will lex FILE and persist its token stream into TABLE of the SQLite database DB.
`
	fmt.Println(text)
}
