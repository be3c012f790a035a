package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ContinuePrompt is shown by WaitForEnter.
const ContinuePrompt = "Press Enter to continue..."

// WaitForEnter writes the continue prompt to out and blocks until a line
// (or EOF) is read from in. Callers skip it when stdin is not a terminal.
func WaitForEnter(in io.Reader, out io.Writer) error {
	if _, err := fmt.Fprint(out, ContinuePrompt); err != nil {
		return fmt.Errorf("failed to write prompt: %w", err)
	}

	_, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
