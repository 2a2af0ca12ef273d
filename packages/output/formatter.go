package output

import (
	"fmt"
	"io"

	"github.com/abdul-hamid-achik/oohttp/packages/http"
	"github.com/abdul-hamid-achik/oohttp/packages/url"
)

// Formatter renders command results.
type Formatter interface {
	FormatURL(u *url.URL) error
	FormatResponse(resp *http.Response) error
	FormatError(err error)
}

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns the formatter registered under name.
func New(name string, w io.Writer, verbose, noColor bool) (Formatter, error) {
	switch name {
	case "", FormatConsole:
		return NewConsoleFormatter(WithWriter(w), WithVerbose(verbose), WithNoColor(noColor)), nil
	case FormatJSON:
		return NewJSONFormatter(JSONWithWriter(w)), nil
	}
	return nil, fmt.Errorf("unknown output format %q (want %s or %s)", name, FormatConsole, FormatJSON)
}
