package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/nullbyte-labs/httpforge/pkg/assembler"
	"github.com/nullbyte-labs/httpforge/pkg/transport"
)

var sendFlags struct {
	host          string
	port          int
	scheme        string
	method        string
	path          string
	headers       []string
	body          string
	keepAlive     bool
	timeoutMs     int64
	collectTiming bool
	insecure      bool
	tlsProfile    string
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Assemble and send a single raw HTTP/1.x request",
	Example: "httpforge send --host example.com --port 443 --scheme https " +
		"--method GET --path /index.html --header 'X-Test: 1'",
	RunE: func(cmd *cobra.Command, args []string) error {
		plan := assembler.New().
			SetMethod(sendFlags.method).
			SetPath(sendFlags.path).
			SetConnection(sendFlags.host, sendFlags.port, sendFlags.scheme).
			SetBody([]byte(sendFlags.body))

		for _, h := range sendFlags.headers {
			name, value, ok := strings.Cut(h, ":")
			if !ok {
				return fmt.Errorf("invalid --header %q, expected NAME:VALUE", h)
			}
			plan.AddHeader(strings.TrimSpace(name), strings.TrimSpace(value))
		}
		plan.SetKeepAlive(sendFlags.keepAlive)

		timeoutMs := sendFlags.timeoutMs
		if !cmd.Flags().Changed("timeout-ms") {
			timeoutMs = cast.ToInt64(appCfg.TimeoutMs)
		}

		opts := transport.DefaultOptions()
		opts.TimeoutMs = timeoutMs
		opts.CollectTiming = sendFlags.collectTiming
		opts.TLS.RejectUnauthorized = !sendFlags.insecure
		opts.TLS.Profile = sendFlags.tlsProfile
		opts.KeepAlive = sendFlags.keepAlive

		tr := transport.New()
		defer tr.Close()

		result, err := tr.RawSend(context.Background(), plan, opts)
		if err != nil {
			return err
		}

		printResult(result)
		return nil
	},
}

func printResult(result *transport.Result) {
	resp := result.Response
	fmt.Fprintf(os.Stdout, "HTTP/%s %d %s\n", resp.HTTPVersionText, resp.StatusCode, resp.StatusMessage)
	for _, k := range resp.Headers.Keys() {
		for _, v := range resp.Headers.Get(k) {
			fmt.Fprintf(os.Stdout, "%s: %s\n", k, v)
		}
	}
	fmt.Fprintln(os.Stdout)
	os.Stdout.Write(resp.BodyBytes)
	fmt.Fprintln(os.Stdout)
	if resp.ParseError != "" {
		fmt.Fprintln(os.Stderr, "parse error:", resp.ParseError)
	}
	if result.Metadata.NegotiatedProtocol != "" {
		fmt.Fprintln(os.Stderr, "negotiated protocol:", result.Metadata.NegotiatedProtocol)
	}
	if result.Metadata.TLSVersionName != "" {
		fmt.Fprintf(os.Stderr, "tls: %s, %s", result.Metadata.TLSVersionName, result.Metadata.CipherSuiteName)
		if result.Metadata.TLSDeprecated {
			fmt.Fprint(os.Stderr, " (deprecated version)")
		}
		fmt.Fprintln(os.Stderr)
	}
}

func init() {
	sendCmd.Flags().StringVar(&sendFlags.host, "host", "", "target host")
	sendCmd.Flags().IntVar(&sendFlags.port, "port", 443, "target port")
	sendCmd.Flags().StringVar(&sendFlags.scheme, "scheme", "https", "http or https")
	sendCmd.Flags().StringVar(&sendFlags.method, "method", "GET", "request method")
	sendCmd.Flags().StringVar(&sendFlags.path, "path", "/", "request target")
	sendCmd.Flags().StringArrayVar(&sendFlags.headers, "header", nil, "NAME:VALUE, repeatable")
	sendCmd.Flags().StringVar(&sendFlags.body, "body", "", "request body")
	sendCmd.Flags().BoolVar(&sendFlags.keepAlive, "keep-alive", true, "emit Connection: keep-alive (false for close)")
	sendCmd.Flags().Int64Var(&sendFlags.timeoutMs, "timeout-ms", 30000, "overall operation timeout")
	sendCmd.Flags().BoolVar(&sendFlags.collectTiming, "timing", false, "collect phase timing")
	sendCmd.Flags().BoolVar(&sendFlags.insecure, "insecure", true, "accept unverified TLS certs (default true per spec)")
	sendCmd.Flags().StringVar(&sendFlags.tlsProfile, "tls-profile", "", "modern/secure/compatible/legacy version profile (empty uses the secure default)")
	_ = sendCmd.MarkFlagRequired("host")
	rootCmd.AddCommand(sendCmd)
}
