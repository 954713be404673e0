package colors

import (
	"fmt"
	"io"
	"strings"
)

// Print methods (default to stdout)
func (c COLOR) Printf(format string, args ...any) {
	fmt.Print(c.prefix() + fmt.Sprintf(format, args...) + c.suffix())
}

func (c COLOR) Println(args ...any) {
	fmt.Print(c.prefix() + fmt.Sprint(args...) + c.suffix() + "\n")
}

// Fprint methods (write to specific writer)
func (c COLOR) Fprintf(w io.Writer, format string, args ...any) {
	fmt.Fprint(w, c.prefix()+fmt.Sprintf(format, args...)+c.suffix())
}

func (c COLOR) Fprint(w io.Writer, args ...any) {
	fmt.Fprint(w, c.prefix()+fmt.Sprint(args...)+c.suffix())
}

func (c COLOR) Fprintln(w io.Writer, args ...any) {
	fmt.Fprint(w, c.prefix()+fmt.Sprint(args...)+c.suffix()+"\n")
}

func (c COLOR) Sprintf(format string, args ...any) string {
	return c.prefix() + fmt.Sprintf(format, args...) + c.suffix()
}

func (c COLOR) Sprint(args ...any) string {
	return c.prefix() + fmt.Sprint(args...) + c.suffix()
}

// ConvertANSIToHTML converts ANSI color codes to HTML span tags
func ConvertANSIToHTML(text string) string {
	result := strings.ReplaceAll(text, "&", "&amp;")
	result = strings.ReplaceAll(result, "<", "&lt;")
	result = strings.ReplaceAll(result, ">", "&gt;")

	ansiToHTMLColors := map[COLOR]string{
		RESET:        "</span>",
		RED:          "<span style=\"color: #ef4444\">",
		GREEN:        "<span style=\"color: #10b981\">",
		YELLOW:       "<span style=\"color: #f59e0b\">",
		BLUE:         "<span style=\"color: #3b82f6\">",
		PURPLE:       "<span style=\"color: #c678dd; font-weight: bold\">",
		CYAN:         "<span style=\"color: #56b6c2\">",
		WHITE:        "<span style=\"color: #f3f4f6\">",
		GREY:         "<span style=\"color: #5c6370\">",
		BOLD_RED:     "<span style=\"color: #ef4444; font-weight: bold\">",
		BOLD_YELLOW:  "<span style=\"color: #f59e0b; font-weight: bold\">",
		BOLD_CYAN:    "<span style=\"color: #56b6c2; font-weight: bold\">",
		ORANGE:       "<span style=\"color: #ff8700\">",
		LIGHT_ORANGE: "<span style=\"color: #d19a66\">",
	}

	for ansi, html := range ansiToHTMLColors {
		result = strings.ReplaceAll(result, string(ansi), html)
	}

	result = strings.ReplaceAll(result, "\n", "<br>")
	result = strings.ReplaceAll(result, "  ", "&nbsp;&nbsp;")

	return result
}
