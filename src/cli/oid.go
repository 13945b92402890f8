// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/x509-der-inspector/src/internal/asn1/oid"
	"github.com/H0llyW00dzZ/x509-der-inspector/src/internal/asn1/tlv"
	"github.com/H0llyW00dzZ/x509-der-inspector/src/logger"
)

func newOIDCommand(opts *options, log func() logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "oid [DOTTED...]",
		Short: "Look up object identifiers",
		Long: `Print the display name and DER encoding of each dotted object identifier.
Without arguments, list every registered identifier.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			OperationPerformed = true

			var rows [][]string
			if len(args) == 0 {
				for _, e := range oid.Entries() {
					rows = append(rows, []string{e.Name, e.OID})
				}
				log().Printf("Listing %d registered object identifiers", len(rows))
				return writeOIDTable(cmd, opts, []string{"Name", "OID"}, rows)
			}

			for _, dotted := range args {
				e, err := tlv.FromObjectIdentifier(dotted)
				if err != nil {
					return fmt.Errorf("invalid object identifier %q: %w", dotted, err)
				}
				name := oid.Lookup(dotted)
				if !oid.Known(dotted) {
					name = "(unregistered)"
				}
				rows = append(rows, []string{dotted, name, strings.ToUpper(hex.EncodeToString(e.Encode()))})
			}
			return writeOIDTable(cmd, opts, []string{"OID", "Name", "DER"}, rows)
		},
	}
}

func writeOIDTable(cmd *cobra.Command, opts *options, headers []string, rows [][]string) error {
	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if err := writeOutput(cmd, opts, []byte(buf.String())); err != nil {
		return err
	}
	OperationPerformedSuccessfully = true
	return nil
}
