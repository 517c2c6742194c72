package cli

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

const (
	textFormat = "text"
	jsonFormat = "json"
	yamlFormat = "yaml"
)

var (
	legalOutputTypes = []string{textFormat, jsonFormat, yamlFormat}
)

type GlobalOptions struct {
	ServerUrl string
	Token     string
	Timeout   time.Duration
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		ServerUrl: "http://localhost:3443",
		Timeout:   30 * time.Second,
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ServerUrl, "server-url", "u", o.ServerUrl, "Address of the server")
	fs.StringVarP(&o.Token, "token", "t", o.Token, "Admin token sent as a bearer token")
	fs.DurationVar(&o.Timeout, "timeout", o.Timeout, "Request timeout")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	o.ServerUrl = strings.TrimSuffix(o.ServerUrl, "/")
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if o.ServerUrl == "" {
		return fmt.Errorf("server url is required")
	}
	return nil
}

func (o *GlobalOptions) Client() *Client {
	return NewClient(o.ServerUrl, o.Token, &http.Client{Timeout: o.Timeout})
}

// OutputOptions selects how a result is printed.
type OutputOptions struct {
	Output string
}

func (o *OutputOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *OutputOptions) Validate() error {
	if len(o.Output) > 0 && !funk.ContainsString(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

// Print writes v as json or yaml. Text output is left to printText.
func (o *OutputOptions) Print(w io.Writer, v any, printText func(io.Writer) error) error {
	switch o.Output {
	case jsonFormat:
		return printJSON(w, v)
	case yamlFormat:
		return printYAML(w, v)
	default:
		return printText(w)
	}
}
