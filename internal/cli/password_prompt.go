package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/terraincognita07/fitlog/internal/services"
)

var (
	errStdinUnavailable    = errors.New("stdin unavailable")
	errPasswordEmpty       = errors.New("password is required")
	errPasswordsDoNotMatch = errors.New("passwords do not match")
)

// PasswordReader returns one line of secret input.
type PasswordReader func() ([]byte, error)

// TerminalPasswordReader reads from stdin with terminal echo disabled.
func TerminalPasswordReader(stdin *os.File) PasswordReader {
	return func() ([]byte, error) {
		return readLineNoEcho(stdin)
	}
}

func readTrimmedLine(input io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// promptNewPassword asks twice and enforces the same strength rules as
// registration.
func promptNewPassword(read PasswordReader, out io.Writer) (string, error) {
	first, err := promptSecret(read, out, "New password: ")
	if err != nil {
		return "", err
	}
	if first == "" {
		return "", errPasswordEmpty
	}
	second, err := promptSecret(read, out, "Repeat password: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errPasswordsDoNotMatch
	}
	if err := services.ValidatePasswordStrength(first); err != nil {
		return "", fmt.Errorf("password must have at least 8 characters with upper case, lower case and digits: %w", err)
	}
	return first, nil
}

func promptSecret(read PasswordReader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	secret, err := read()
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}
