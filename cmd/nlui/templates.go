package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage the prompt template catalog",
	}
	cmd.AddCommand(a.templatesListCmd(), a.templatesImportCmd())
	return cmd
}

func (a *app) templatesListCmd() *cobra.Command {
	var query, tag string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates, optionally filtered by search text or tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			db, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			store, err := openTemplates(cmd.Context(), cfg, db, a.logger(cmd, "templates"))
			if err != nil {
				return err
			}
			list, err := store.Search(cmd.Context(), query, tag)
			if err != nil {
				return err
			}
			for _, t := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-34s %s\n", t.ID, t.Title, strings.Join(t.Tags, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "full-text search")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only templates with this tag")
	return cmd
}

func (a *app) templatesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Import .json and .yaml template files from a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			db, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			store, err := openTemplates(cmd.Context(), cfg, db, a.logger(cmd, "templates"))
			if err != nil {
				return err
			}
			n, err := store.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d template(s) from %s\n", n, args[0])
			return nil
		},
	}
}

func decodeBody(resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", resp.Request.URL, err)
	}
	return nil
}
