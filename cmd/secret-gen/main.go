// Command secret-gen prints a random JWT signing secret as a .env line.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"sarb.backend/pkg/crypto"
)

const minBytes = 32

var randomToken = crypto.GenerateRandomToken

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("secret-gen", flag.ContinueOnError)
	size := fs.Int("bytes", 48, "random bytes in the secret")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *size < minBytes {
		return fmt.Errorf("invalid bytes: %d (minimum %d)", *size, minBytes)
	}

	secret, err := randomToken(*size)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "JWT_SECRET=%s\n", secret)
	return err
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}
