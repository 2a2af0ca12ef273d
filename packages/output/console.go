package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/abdul-hamid-achik/oohttp/packages/http"
	"github.com/abdul-hamid-achik/oohttp/packages/url"
	"github.com/fatih/color"
)

// maxBodyLen caps the body printed when not verbose.
const maxBodyLen = 4096

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatURL prints the serialized URL followed by its parts, one per line.
// Absent parts are omitted.
func (f *ConsoleFormatter) FormatURL(u *url.URL) error {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(f.writer, "%s\n", bold(u.String()))

	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(f.writer, "  %s %s\n", cyan(fmt.Sprintf("%-9s", name)), value)
		}
	}
	field("protocol", u.Protocol)
	field("hostname", u.Hostname)
	if u.Port != 0 {
		field("port", strconv.Itoa(u.Port))
	}
	field("pathname", u.Pathname)
	if u.Query.Len() > 0 {
		fmt.Fprintf(f.writer, "  %s\n", cyan("query"))
		for _, key := range u.Query.Keys() {
			for _, v := range u.Query.Values(key) {
				fmt.Fprintf(f.writer, "    %s = %s\n", key, v)
			}
		}
	}
	field("hash", u.Hash)
	return nil
}

// FormatResponse prints the status line, headers when verbose, and the body.
// JSON bodies are indented.
func (f *ConsoleFormatter) FormatResponse(resp *http.Response) error {
	dim := color.New(color.Faint).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	status := resp.Status
	if status == "" {
		status = strconv.Itoa(resp.StatusCode)
	}
	fmt.Fprintf(f.writer, "%s %s\n", statusColor(resp)(status), dim(fmt.Sprintf("(%dms)", resp.DurationMs())))

	if f.verbose && len(resp.Headers) > 0 {
		keys := make([]string, 0, len(resp.Headers))
		for k := range resp.Headers {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(f.writer, "%s: %s\n", cyan(k), resp.Headers[k])
		}
	}

	if len(resp.Body) == 0 {
		return nil
	}
	fmt.Fprintln(f.writer)

	body := resp.Body
	if resp.IsJSON() {
		var buf bytes.Buffer
		if err := json.Indent(&buf, body, "", "  "); err == nil {
			body = buf.Bytes()
		}
	}
	if !f.verbose && len(body) > maxBodyLen {
		fmt.Fprintf(f.writer, "%s\n%s\n", body[:maxBodyLen], dim(fmt.Sprintf("... %d more bytes", len(body)-maxBodyLen)))
		return nil
	}
	_, err := fmt.Fprintf(f.writer, "%s\n", body)
	return err
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func statusColor(resp *http.Response) func(a ...any) string {
	switch {
	case resp.IsServerError():
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case resp.IsClientError():
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case resp.IsRedirect():
		return color.New(color.FgCyan, color.Bold).SprintFunc()
	default:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	}
}
