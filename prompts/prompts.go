package prompts

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ContinueOnWarnings shows each warning and asks the operator whether to
// keep building the script. Warnings are correctable choices, not errors;
// the operator decides.
func ContinueOnWarnings(warnings []string) bool {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, w)
	}
	for {
		answer := strings.ToLower(Prompt("Continue building the script anyway? (y/N) "))
		if answer == "y" {
			return true
		}
		if answer == "n" || answer == "" {
			return false
		}
	}
}

func Prompt(message string) string {
	return promptFrom(os.Stdin, message)
}

func promptFrom(r io.Reader, message string) string {
	fmt.Fprint(os.Stderr, message)
	buf := bufio.NewReader(r)
	input, _ := buf.ReadString('\n')
	return strings.TrimSpace(input)
}
