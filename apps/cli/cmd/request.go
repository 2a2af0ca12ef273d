package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/oohttp/packages/core/config"
	"github.com/abdul-hamid-achik/oohttp/packages/core/env"
	"github.com/abdul-hamid-achik/oohttp/packages/http"
	"github.com/abdul-hamid-achik/oohttp/packages/url"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// varEnvPrefix marks OS environment variables exposed as {{name}} variables.
const varEnvPrefix = "OOHTTP_VAR_"

var requestCmd = &cobra.Command{
	Use:   "request <METHOD> <url>",
	Short: "Send a request merged over the base URL",
	Long: `Send an HTTP request. The URL is merged over the base URL from --base,
OOHTTP_BASE_URL or the config file: every part it leaves out is taken from
the base, and base query parameters are appended.

Examples:
  oohttp request GET https://api.example.com/items
  oohttp request GET :9800/items?page=2 --base http://localhost
  oohttp request POST /items -d '{"name":"{{name}}"}' --var name=widget
  oohttp request POST /login --form user=admin --form pass={{$PASSWORD}}`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, strings.ToUpper(args[0]), args[1])
	},
}

var (
	baseFlag              string
	headerFlags           []string
	dataFlag              string
	formFlags             []string
	timeoutFlag           string
	proxyFlag             string
	insecureFlag          bool
	autoContentLengthFlag bool
	maxRedirectsFlag      int
	selectFlag            string
	schemaFlag            string
	varFlags              []string
	rateFlag              float64
)

func methodCommand(method string) *cobra.Command {
	name := strings.ToLower(method)
	return &cobra.Command{
		Use:   name + " <url>",
		Short: fmt.Sprintf("Send a %s request merged over the base URL", method),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, method, args[0])
		},
	}
}

func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&baseFlag, "base", "b", getEnvString("OOHTTP_BASE_URL", ""), "Base URL merged under the request URL (env: OOHTTP_BASE_URL)")
	cmd.Flags().StringArrayVarP(&headerFlags, "header", "H", nil, "Request header as \"Name: value\" (repeatable)")
	cmd.Flags().StringVarP(&dataFlag, "data", "d", "", "Request body; @file reads a file, @- reads stdin")
	cmd.Flags().StringArrayVar(&formFlags, "form", nil, "Form field as key=value, sent url-encoded (repeatable)")
	cmd.Flags().StringVar(&timeoutFlag, "timeout", getEnvString("OOHTTP_TIMEOUT", ""), "Request timeout (e.g., 30s, 1m) (env: OOHTTP_TIMEOUT)")
	cmd.Flags().StringVar(&proxyFlag, "proxy", getEnvString("OOHTTP_PROXY", ""), "Proxy URL for HTTP requests (env: OOHTTP_PROXY)")
	cmd.Flags().BoolVarP(&insecureFlag, "insecure", "k", getEnvBool("OOHTTP_INSECURE", false), "Disable SSL certificate validation (env: OOHTTP_INSECURE)")
	cmd.Flags().BoolVar(&autoContentLengthFlag, "auto-content-length", getEnvBool("OOHTTP_AUTO_CONTENT_LENGTH", false), "Set Content-Length from the body (env: OOHTTP_AUTO_CONTENT_LENGTH)")
	cmd.Flags().IntVar(&maxRedirectsFlag, "max-redirects", getEnvInt("OOHTTP_MAX_REDIRECTS", 0), "Maximum redirects to follow (env: OOHTTP_MAX_REDIRECTS)")
	cmd.Flags().StringVar(&selectFlag, "select", "", "Print only the value at this JSON path (gjson syntax)")
	cmd.Flags().StringVar(&schemaFlag, "schema", "", "Validate the JSON response against a JSON schema file")
	cmd.Flags().StringArrayVar(&varFlags, "var", nil, "Variable for {{name}} placeholders as key=value (repeatable)")
	cmd.Flags().Float64Var(&rateFlag, "rate", getEnvFloat("OOHTTP_RATE", 0), "Maximum requests per second (env: OOHTTP_RATE)")
}

func init() {
	commands := []*cobra.Command{requestCmd}
	for _, method := range []string{"GET", "POST", "PUT", "PATCH", "DELETE"} {
		commands = append(commands, methodCommand(method))
	}
	for _, c := range commands {
		addRequestFlags(c)
		rootCmd.AddCommand(c)
	}
}

func runRequest(cmd *cobra.Command, method, target string) error {
	cfg, cfgErr := loadRequestConfig()

	formatter, err := newFormatter(cmd, cfg)
	if err != nil {
		return err
	}
	fail := func(code int, err error) error {
		formatter.FormatError(err)
		return exitWith(code, err)
	}

	if cfgErr != nil {
		if errors.Is(cfgErr, url.ErrInvalidURL) {
			return fail(ExitInvalidURL, cfgErr)
		}
		return fail(ExitConfigError, cfgErr)
	}

	logger := setupLogger(displaySettings(cmd, cfg))

	flagVars, err := env.ParseAssignments(varFlags)
	if err != nil {
		return fail(ExitUsageError, err)
	}
	resolver, err := newResolver(logger, flagVars)
	if err != nil {
		return fail(ExitConfigError, err)
	}

	headers, err := parseHeaders(headerFlags)
	if err != nil {
		return fail(ExitUsageError, err)
	}
	if dataFlag != "" && len(formFlags) > 0 {
		return fail(ExitUsageError, errors.New("--data and --form cannot be combined"))
	}

	client := http.NewClient(
		http.WithTimeout(cfg.TimeoutDuration()),
		http.WithFollowRedirects(cfg.GetFollowRedirects()),
		http.WithMaxRedirects(cfg.MaxRedirects),
		http.WithValidateSSL(cfg.GetValidateSSL()),
		http.WithProxy(cfg.Proxy),
		http.WithRateLimit(cfg.RateLimit),
		http.WithLogger(logger),
	)

	base := http.NewBase(cfg.BaseURL, client)
	base.Headers = resolver.ResolveAll(cfg.Headers)
	base.Timeout = cfg.TimeoutDuration()
	base.AutoContentLength = config.BoolPtr(cfg.GetAutoContentLength())

	req, err := base.Request(method, resolver.Resolve(target))
	if err != nil {
		return fail(ExitInvalidURL, err)
	}
	logger.WithField("url", req.URL.String()).Info("resolved request URL")

	for k, v := range resolver.ResolveAll(headers) {
		req.SetHeader(k, v)
	}

	body, err := requestBody(cmd, req, resolver)
	if err != nil {
		return fail(ExitUsageError, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resp, err := base.Send(ctx, req, body)
	if err != nil {
		var se *http.StatusError
		if errors.As(err, &se) && resp != nil {
			if ferr := formatter.FormatResponse(resp); ferr != nil {
				logger.WithError(ferr).Warn("cannot write response")
			}
		}
		return fail(requestExitCode(err), err)
	}

	if schemaFlag != "" {
		schema, err := os.ReadFile(schemaFlag)
		if err != nil {
			return fail(ExitUsageError, fmt.Errorf("reading schema: %w", err))
		}
		if err := resp.ValidateSchema(schema); err != nil {
			return fail(requestExitCode(err), err)
		}
	}

	if selectFlag != "" {
		result := resp.Get(selectFlag)
		if !result.Exists() {
			return fail(ExitRequestFailure, fmt.Errorf("no value at %q", selectFlag))
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), result.String())
		return err
	}

	return formatter.FormatResponse(resp)
}

// loadRequestConfig merges flag and environment overrides over the config
// file.
func loadRequestConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}

	overrides := &config.Config{
		Proxy:        proxyFlag,
		RateLimit:    rateFlag,
		MaxRedirects: maxRedirectsFlag,
	}
	if baseFlag != "" {
		u, err := url.Parse(baseFlag)
		if err != nil {
			return nil, fmt.Errorf("--base: %w", err)
		}
		overrides.BaseURL = u
	}
	if timeoutFlag != "" {
		d, err := time.ParseDuration(timeoutFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout value %q: %w (use format like 30s, 1m, 500ms)", timeoutFlag, err)
		}
		overrides.Timeout = int(d.Milliseconds())
	}
	if insecureFlag {
		overrides.ValidateSSL = config.BoolPtr(false)
	}
	if autoContentLengthFlag {
		overrides.AutoContentLength = config.BoolPtr(true)
	}

	return cfg.Merge(overrides), nil
}

// newResolver collects variables from OOHTTP_VAR_* environment variables, the
// .env file and --var flags, later sources winning.
func newResolver(logger *logrus.Logger, flagVars map[string]any) (*env.Resolver, error) {
	var fileVars map[string]any
	if envFileFlag != "" {
		vars, err := env.LoadAndExportDotEnv(envFileFlag)
		if err != nil {
			return nil, err
		}
		fileVars = env.FromStrings(vars)
	}

	resolver := env.NewResolver()
	resolver.SetWarnFunc(logger.Warnf)
	resolver.SetVariables(env.MergeVariables(env.LoadSystemEnv(varEnvPrefix), fileVars, flagVars))
	return resolver, nil
}

func parseHeaders(lines []string) (map[string]string, error) {
	headers := make(map[string]string, len(lines))
	for _, line := range lines {
		name, value, found := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("invalid header %q: expected \"Name: value\"", line)
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}

// requestBody returns the body for req from --data or --form. Form bodies
// switch the content type to url-encoded.
func requestBody(cmd *cobra.Command, req *http.Request, resolver *env.Resolver) (any, error) {
	if len(formFlags) > 0 {
		form := url.NewQuery()
		for _, field := range formFlags {
			key, value, found := strings.Cut(field, "=")
			if !found || key == "" {
				return nil, fmt.Errorf("invalid form field %q: expected key=value", field)
			}
			form.Add(resolver.Resolve(key), resolver.Resolve(value))
		}
		req.SetHeader("Content-Type", http.FormContentType)
		return form, nil
	}

	if dataFlag == "" {
		return nil, nil
	}

	data := dataFlag
	if path, ok := strings.CutPrefix(dataFlag, "@"); ok {
		var (
			raw []byte
			err error
		)
		if path == "-" {
			raw, err = io.ReadAll(cmd.InOrStdin())
		} else {
			raw, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %w", err)
		}
		data = string(raw)
	}
	return resolver.Resolve(data), nil
}
