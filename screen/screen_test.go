package screen

import (
	"bytes"
	"strings"
	"testing"
)

func TestPadRight(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"ab", 4, "ab  "},
		{"abcdef", 4, "abcd"},
		{"", 2, "  "},
		{"abcd", 4, "abcd"},
	}
	for _, c := range cases {
		if got := PadRight(c.in, c.width); got != c.want {
			t.Fatalf("PadRight(%q, %d) = %q, want %q", c.in, c.width, got, c.want)
		}
	}
}

func TestConsolePrintAt(t *testing.T) {
	c := NewConsole(8, 2)
	PrintAt(c, 2, 1, "hello world")

	if got := c.Row(1); got != "  hello " {
		t.Fatalf("row 1 = %q", got)
	}
	if got := c.Row(0); got != "        " {
		t.Fatalf("row 0 = %q", got)
	}
	if c.Prints() != 1 {
		t.Fatalf("Prints() = %d", c.Prints())
	}
}

func TestConsoleClear(t *testing.T) {
	c := NewConsole(4, 2)
	PrintAt(c, 0, 0, "abcd")
	c.ClearDisplay()
	c.Print([]byte("x"))

	if c.Frame() != "x   \n    " {
		t.Fatalf("frame %q", c.Frame())
	}
	if c.Clears() != 1 {
		t.Fatalf("Clears() = %d", c.Clears())
	}
}

func TestConsoleIgnoresRowsPastEnd(t *testing.T) {
	c := NewConsole(4, 1)
	PrintAt(c, 0, 3, "abcd")
	if c.Row(0) != "    " {
		t.Fatalf("row 0 = %q", c.Row(0))
	}
}

func TestConsoleFlush(t *testing.T) {
	c := NewConsole(3, 1)
	PrintAt(c, 0, 0, "abc")

	var buf bytes.Buffer
	if err := c.Flush(&buf); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := strings.Join([]string{"+---+", "|abc|", "+---+", ""}, "\n")
	if buf.String() != want {
		t.Fatalf("Flush wrote %q", buf.String())
	}
}
