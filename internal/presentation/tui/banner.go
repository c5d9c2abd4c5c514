package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Parley banner to w, coloured when the terminal allows.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	rows := []struct {
		text  string
		color string
	}{
		{"  ___          _           ", "#818cf8"},
		{" | _ \\__ _ _ _| |___ _  _  ", "#a78bfa"},
		{" |  _/ _` | '_| / -_) || | ", "#c084fc"},
		{" |_| \\__,_|_| |_\\___|\\_, | ", "#e879f9"},
		{"                     |__/  ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, row := range rows {
		fmt.Fprintln(w, out.String(row.text).Foreground(out.Color(row.color)))
	}
	fmt.Fprintln(w)
}
