package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nlui/studio/internal/config"
	"github.com/nlui/studio/internal/export"
	"github.com/nlui/studio/internal/render"
	"github.com/nlui/studio/internal/uidoc"
)

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a document against the schema and report unknown kinds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0])
			var se *uidoc.SchemaError
			if errors.As(err, &se) {
				for _, is := range se.Issues {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", is.Path, is.Message)
				}
				return fmt.Errorf("%s: %d schema violation(s)", args[0], len(se.Issues))
			}
			if err != nil {
				return err
			}
			for _, d := range uidoc.Diagnose(doc) {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s: %s\n", d.Path, d.Message)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %q, %d nodes\n", doc.Title, uidoc.Count(doc.Tree))
			return nil
		},
	}
}

func (a *app) renderCmd() *cobra.Command {
	var (
		backend  string
		editable bool
		fragment bool
		out      string
	)
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a document to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			b, err := render.New(backend, render.Options{Editable: editable})
			if err != nil {
				return err
			}
			res := render.Render(doc, b)
			a.logger(cmd, "render").Render(res.Backend, res.Nodes)
			html := res.HTML
			if !fragment {
				html = render.Page(doc.Title, res)
			}
			return writeOutput(cmd, out, []byte(html))
		},
	}
	cmd.Flags().StringVarP(&backend, "backend", "b", render.DefaultBackend, "backend: "+strings.Join(render.Names(), ", "))
	cmd.Flags().BoolVar(&editable, "editable", false, "add drag handles (canvas backend)")
	cmd.Flags().BoolVar(&fragment, "fragment", false, "emit the fragment without a page wrapper")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (a *app) generateCmd() *cobra.Command {
	var (
		out     string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "generate <prompt...>",
		Short: "Generate a document from a prompt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			llm, err := config.NewProvider(cfg)
			if err != nil {
				return err
			}
			gen := newGenerator(cfg, llm, a.logger(cmd, "generate"), nil)

			ctx, cancel := contextWithTimeout(cmd, timeout)
			defer cancel()
			res, err := gen.Generate(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			for _, d := range res.Diagnostics {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", d.Path, d.Message)
			}
			data, err := json.MarshalIndent(res.Document, "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(cmd, out, append(data, '\n'))
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "generation timeout")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write a zip bundle with the document, previews and a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			now := time.Now()
			if out == "" {
				out = export.Filename(doc, now)
			}
			var buf bytes.Buffer
			m, err := export.Write(&buf, doc, export.Options{AppName: appName, Version: version, Now: now})
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d files, %d components)\n", out, len(m.Files), m.ComponentCount)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "bundle path (default <title>-<date>.zip)")
	return cmd
}
