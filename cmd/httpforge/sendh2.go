package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nullbyte-labs/httpforge/pkg/hpack"
	"github.com/nullbyte-labs/httpforge/pkg/http2client"
)

var sendH2Flags struct {
	host      string
	port      int
	method    string
	path      string
	authority string
	headers   []string
	body      string
	timeoutMs int64
	insecure  bool
}

var sendH2Cmd = &cobra.Command{
	Use:   "send-h2",
	Short: "Send a single HTTP/2 request (HEADERS + optional DATA on stream 1)",
	Example: "httpforge send-h2 --host example.com --port 443 " +
		"--method GET --path /index.html",
	RunE: func(cmd *cobra.Command, args []string) error {
		authority := sendH2Flags.authority
		if authority == "" {
			authority = sendH2Flags.host
		}

		req := http2client.Request{
			PseudoHeaders: []hpack.HeaderField{
				{Name: ":method", Value: sendH2Flags.method},
				{Name: ":path", Value: sendH2Flags.path},
				{Name: ":scheme", Value: "https"},
				{Name: ":authority", Value: authority},
			},
			Body: []byte(sendH2Flags.body),
		}
		for _, h := range sendH2Flags.headers {
			name, value, ok := strings.Cut(h, ":")
			if !ok {
				return fmt.Errorf("invalid --header %q, expected NAME:VALUE", h)
			}
			req.RegularHeaders = append(req.RegularHeaders, hpack.HeaderField{
				Name:  strings.ToLower(strings.TrimSpace(name)),
				Value: strings.TrimSpace(value),
			})
		}

		opts := http2client.Options{
			TimeoutMs:          sendH2Flags.timeoutMs,
			RejectUnauthorized: !sendH2Flags.insecure,
		}

		resp, err := http2client.Send(context.Background(), sendH2Flags.host, sendH2Flags.port, req, opts)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, ":status %d\n", resp.Status)
		for _, k := range resp.Headers.Keys() {
			for _, v := range resp.Headers.Get(k) {
				fmt.Fprintf(os.Stdout, "%s: %s\n", k, v)
			}
		}
		fmt.Fprintln(os.Stdout)
		os.Stdout.Write(resp.Body)
		fmt.Fprintln(os.Stdout)
		return nil
	},
}

func init() {
	sendH2Cmd.Flags().StringVar(&sendH2Flags.host, "host", "", "target host")
	sendH2Cmd.Flags().IntVar(&sendH2Flags.port, "port", 443, "target port")
	sendH2Cmd.Flags().StringVar(&sendH2Flags.method, "method", "GET", "request method")
	sendH2Cmd.Flags().StringVar(&sendH2Flags.path, "path", "/", "request target")
	sendH2Cmd.Flags().StringVar(&sendH2Flags.authority, "authority", "", "defaults to --host")
	sendH2Cmd.Flags().StringArrayVar(&sendH2Flags.headers, "header", nil, "NAME:VALUE, repeatable")
	sendH2Cmd.Flags().StringVar(&sendH2Flags.body, "body", "", "request body")
	sendH2Cmd.Flags().Int64Var(&sendH2Flags.timeoutMs, "timeout-ms", 30000, "overall operation timeout")
	sendH2Cmd.Flags().BoolVar(&sendH2Flags.insecure, "insecure", true, "accept unverified TLS certs")
	_ = sendH2Cmd.MarkFlagRequired("host")
	rootCmd.AddCommand(sendH2Cmd)
}
