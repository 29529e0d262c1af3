// Command redact-logs scrubs credentials, tokens, password hashes and other
// sensitive fragments from log output before it is shared. It reads the
// files named on the command line, or stdin when there are none, and writes
// the redacted lines to stdout.
//
//	mesto-api 2>&1 | redact-logs > shareable.log
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/mesto-api/internal/redact"
)

// maxLine bounds a single log line; slog JSON lines are far shorter.
const maxLine = 1 << 20

func main() {
	if err := run(os.Stdout, os.Stdin, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "redact-logs: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer, stdin io.Reader, files []string) error {
	w := bufio.NewWriter(out)

	if len(files) == 0 {
		if err := redactStream(w, stdin); err != nil {
			return err
		}
		return w.Flush()
	}

	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		err = redactStream(w, f)
		closeErr := f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if closeErr != nil {
			return closeErr
		}
	}
	return w.Flush()
}

func redactStream(w *bufio.Writer, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLine)
	for scanner.Scan() {
		if _, err := w.WriteString(redact.String(scanner.Text()) + "\n"); err != nil {
			return err
		}
	}
	return scanner.Err()
}
