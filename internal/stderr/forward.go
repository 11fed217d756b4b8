package stderr

import (
	"bufio"
	"io"
	"strings"
)

// forward calls onLine for every non-blank line read from r until EOF.
func forward(r io.Reader, onLine func(string)) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && onLine != nil {
			onLine(line)
		}
	}
}
