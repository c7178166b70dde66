package notes

import "strings"

// splitLines breaks document text into lines without a trailing empty
// element for the final newline, so that splitLines/joinLines round trip.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// joinLines reassembles lines into document text ending in a newline.
func joinLines(lines []string) string {
	out := strings.Join(lines, "\n")
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// insertLines splices add into lines at index at. at may equal len(lines),
// which appends.
func insertLines(lines []string, at int, add ...string) []string {
	if at < 0 {
		at = 0
	}
	if at > len(lines) {
		at = len(lines)
	}
	out := make([]string, 0, len(lines)+len(add))
	out = append(out, lines[:at]...)
	out = append(out, add...)
	out = append(out, lines[at:]...)
	return out
}

// removeLineAt deletes the line at index at.
func removeLineAt(lines []string, at int) []string {
	if at < 0 || at >= len(lines) {
		return lines
	}
	out := make([]string, 0, len(lines)-1)
	out = append(out, lines[:at]...)
	out = append(out, lines[at+1:]...)
	return out
}
