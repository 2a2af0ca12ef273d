package cmd

import (
	"github.com/abdul-hamid-achik/oohttp/packages/url"
	"github.com/spf13/cobra"
)

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Parse, merge and normalize URLs without sending anything",
}

var urlParseCmd = &cobra.Command{
	Use:   "parse <url>",
	Short: "Split a URL into its parts",
	Long: `Split a URL into protocol, hostname, port, pathname, query and hash.
Partial URLs such as ":9800/items" or "?page=2" are accepted.

Examples:
  oohttp url parse "http://localhost:9800/items?tag=a&tag=b#top"
  oohttp url parse ":9800/items" -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return formatURL(cmd, func() (*url.URL, error) {
			return url.Parse(args[0])
		})
	},
}

var urlMergeCmd = &cobra.Command{
	Use:   "merge <url> <base>",
	Short: "Fill the parts a URL lacks from a base URL",
	Long: `Merge a URL over a base URL. Parts present on the URL win; missing parts
come from the base. Query parameters are combined, the URL's values first.

Example:
  oohttp url merge ":9800/items?page=2" "http://localhost?apiKey=secret"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return formatURL(cmd, func() (*url.URL, error) {
			u, err := url.Parse(args[0])
			if err != nil {
				return nil, err
			}
			if err := u.MergeFromString(args[1]); err != nil {
				return nil, err
			}
			return u, nil
		})
	},
}

var urlQueryCmd = &cobra.Command{
	Use:   "query <search>",
	Short: "Decode and re-encode a query string",
	Long: `Decode a query string, with or without the leading "?", and print it in
normalized form. Repeated keys are grouped in order of first appearance;
pieces that are not exactly key=value are dropped.

Example:
  oohttp url query "?a=1&b=x&a=2&broken"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return formatURL(cmd, func() (*url.URL, error) {
			u := url.New()
			u.Query = url.DecodeQuery(args[0])
			return u, nil
		})
	},
}

func formatURL(cmd *cobra.Command, build func() (*url.URL, error)) error {
	formatter, err := newFormatter(cmd, nil)
	if err != nil {
		return err
	}

	u, err := build()
	if err != nil {
		formatter.FormatError(err)
		return exitWith(ExitInvalidURL, err)
	}
	return formatter.FormatURL(u)
}

func init() {
	urlCmd.AddCommand(urlParseCmd)
	urlCmd.AddCommand(urlMergeCmd)
	urlCmd.AddCommand(urlQueryCmd)
	rootCmd.AddCommand(urlCmd)
}
