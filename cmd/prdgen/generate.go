package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prdforge/prdforge/backend/go-services/internal/config"
	"github.com/prdforge/prdforge/backend/go-services/internal/generator"
	"github.com/prdforge/prdforge/backend/go-services/internal/llm"
	"github.com/prdforge/prdforge/backend/go-services/internal/prd"
	"github.com/prdforge/prdforge/backend/go-services/pkg/logger"
)

type generateOptions struct {
	idea     string
	format   string
	offline  bool
	provider string
	model    string
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the generation pipeline and print the document",
		Long: `Generate a PRD for --idea and print it as markdown or JSON.

The configured LLM provider is used unless --offline is given. Any failure
other than missing credentials falls back to the built-in template; the
source is reported on stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.idea, "idea", "i", "", "Startup idea to expand (required)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "markdown", "Output format (markdown/json)")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "Skip the LLM and use the built-in template")
	cmd.Flags().StringVarP(&opts.provider, "llm", "l", "", "LLM provider (gemini/anthropic); overrides LLM_PROVIDER")
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Model to use (provider-specific)")
	_ = cmd.MarkFlagRequired("idea")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	idea := strings.TrimSpace(opts.idea)
	if idea == "" {
		return fmt.Errorf("%w: --idea must not be empty", prd.ErrInvalidInput)
	}
	if opts.format != "markdown" && opts.format != "json" {
		return fmt.Errorf("%w: unknown format %q", prd.ErrInvalidInput, opts.format)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var res *generator.Result
	if opts.offline {
		res = generator.New(nil).Offline(idea)
	} else {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if opts.provider != "" {
			cfg.LLM.Provider = opts.provider
		}
		if opts.model != "" {
			cfg.LLM.Model = opts.model
		}
		client, err := llm.New(ctx, cfg.LLM)
		if err != nil {
			return err
		}
		res, err = generator.New(client).Generate(ctx, idea)
		if err != nil {
			return err
		}
	}
	if res.Reason != "" {
		logger.Warnf("used fallback template (%s)", res.Reason)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "source: %s\n", res.Source)

	doc := &prd.Document{Title: prd.DeriveTitle(res.Content), Markdown: res.Markdown, Content: res.Content}
	out := prd.ExportMarkdown(doc)
	if opts.format == "json" {
		b, err := prd.ExportJSON(doc)
		if err != nil {
			return err
		}
		out = append(b, '\n')
	}
	_, err := cmd.OutOrStdout().Write(out)
	return err
}
