// Command hash-gen prints the bcrypt hash of a password, for the
// password_hash field of seed fixtures.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"sarb.backend/pkg/crypto"
)

var (
	stdin          io.Reader = os.Stdin
	stdout         io.Writer = os.Stdout
	generateHashFn           = crypto.HashPassword
	fatalfFn                 = log.Fatalf
)

// resolvePassword takes the first argument, or the first line of in.
func resolvePassword(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func run(args []string) error {
	password, err := resolvePassword(args, stdin)
	if err != nil {
		return err
	}
	if err := crypto.ValidatePassword(password); err != nil {
		return err
	}
	hash, err := generateHashFn(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, hash)
	return err
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fatalfFn("Failed to hash password: %v", err)
	}
}
