// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vectool Contributors

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vectool-dev/vectool/internal/config"
	"github.com/vectool-dev/vectool/internal/embed"
	"github.com/vectool-dev/vectool/internal/store/qdrant"
	"github.com/vectool-dev/vectool/internal/tool"
	vecerr "github.com/vectool-dev/vectool/pkg/errors"
)

// runOptions mirrors the tool's request fields as CLI flags.
type runOptions struct {
	action      string
	collection  string
	content     string
	metadata    string // JSON object
	pointID     string
	query       string
	filterBy    string
	filterValue string
	limit       int
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a single tool action against a collection",
		Example: `  vectool run --action add --collection memories --content "hello" --metadata '{"tag":"x"}'
  vectool run --action search --collection memories --query "hello" --filter-by tag --filter-value x
  vectool run --action list --collection memories --limit 5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := buildRequest(opts)
			if err != nil {
				return err
			}

			cfg, err := config.FromViper(viper.GetViper())
			if err != nil {
				return err
			}

			st, err := qdrant.New(qdrant.Config{
				URL:    cfg.Qdrant.URL,
				APIKey: cfg.Qdrant.APIKey,
			})
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			em, err := embed.NewOpenAI(embed.OpenAIConfig{
				APIKey:     cfg.OpenAI.APIKey,
				Model:      cfg.Embedding.Model,
				BaseURL:    cfg.OpenAI.BaseURL,
				Dimensions: cfg.Embedding.Dimensions,
			})
			if err != nil {
				return err
			}

			tl, err := tool.New(tool.Config{Store: st, Embedder: em})
			if err != nil {
				return err
			}

			// The tool contract is textual: failures come back as an
			// "Error: ..." report, and the command still exits zero.
			fmt.Fprintln(cmd.OutOrStdout(), tl.Execute(cmd.Context(), req))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.action, "action", "", "action to perform: add, update, list, delete, search")
	cmd.Flags().StringVar(&opts.collection, "collection", "", "name of the collection to operate on")
	cmd.Flags().StringVar(&opts.content, "content", "", "content to add or update")
	cmd.Flags().StringVar(&opts.metadata, "metadata", "", "metadata as a JSON object")
	cmd.Flags().StringVar(&opts.pointID, "point-id", "", "id of the point to update or delete")
	cmd.Flags().StringVar(&opts.query, "query", "", "search query")
	cmd.Flags().StringVar(&opts.filterBy, "filter-by", "", "metadata field to filter on")
	cmd.Flags().StringVar(&opts.filterValue, "filter-value", "", "value to filter by")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "maximum number of results (default 10)")

	_ = cmd.MarkFlagRequired("action")
	_ = cmd.MarkFlagRequired("collection")

	return cmd
}

// buildRequest converts CLI flags into a tool request. Only the metadata
// flag needs parsing; per-action field validation is the tool's job.
func buildRequest(opts runOptions) (tool.Request, error) {
	req := tool.Request{
		Action:         tool.Action(opts.action),
		CollectionName: opts.collection,
		Content:        opts.content,
		PointID:        opts.pointID,
		Query:          opts.query,
		FilterBy:       opts.filterBy,
		FilterValue:    opts.filterValue,
		Limit:          opts.limit,
	}

	if opts.metadata != "" {
		var metadata map[string]any
		if err := json.Unmarshal([]byte(opts.metadata), &metadata); err != nil {
			return tool.Request{}, vecerr.Wrapf(err, vecerr.CodeCLIInputInvalid,
				"parsing --metadata %q as JSON object", opts.metadata)
		}
		req.Metadata = metadata
	}

	return req, nil
}
