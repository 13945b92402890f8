// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"bytes"
	"encoding/hex"
	"encoding/pem"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/x509-der-inspector/src/internal/asn1/oid"
	"github.com/H0llyW00dzZ/x509-der-inspector/src/internal/asn1/tlv"
	"github.com/H0llyW00dzZ/x509-der-inspector/src/logger"
)

// maxPreview bounds the hex shown for one primitive element.
const maxPreview = 32

var pemMarker = []byte("-----BEGIN ")

func newDumpCommand(opts *options, log func() logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [FILE]",
		Short: "Print the raw TLV tree of DER or PEM input",
		Long: `Print every tag-length-value element of the input with its offset,
depth, header length and content length, in the manner of openssl asn1parse.
PEM input is dumped block by block.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			data, source, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			OperationPerformed = true

			var sb strings.Builder
			blocks := 0
			for rest := data; bytes.Contains(rest, pemMarker); {
				var block *pem.Block
				block, rest = pem.Decode(rest)
				if block == nil {
					break
				}
				blocks++
				fmt.Fprintf(&sb, "-- %s block %d --\n", block.Type, blocks)
				if err := dumpDER(&sb, block.Bytes, cfg.Decoder.MaxDepth); err != nil {
					return fmt.Errorf("error dumping %s block %d: %w", block.Type, blocks, err)
				}
			}
			if blocks == 0 {
				if err := dumpDER(&sb, data, cfg.Decoder.MaxDepth); err != nil {
					return fmt.Errorf("error dumping %s: %w", source, err)
				}
			}
			log().Printf("Dumped %d bytes from %s", len(data), source)

			if err := cmd.Context().Err(); err != nil {
				return err
			}
			if err := writeOutput(cmd, opts, []byte(sb.String())); err != nil {
				return err
			}
			OperationPerformedSuccessfully = true
			return nil
		},
	}
}

// dumpDER writes one line per element of the TLV tree in data.
func dumpDER(sb *strings.Builder, data []byte, maxDepth int) error {
	nodes, err := tlv.Walk(data, maxDepth)
	if err != nil {
		return err
	}

	var write func(nodes []tlv.Node)
	write = func(nodes []tlv.Node) {
		for _, n := range nodes {
			kind := "prim"
			if n.Element.Tag().Constructed() {
				kind = "cons"
			}
			fmt.Fprintf(sb, "%5d:d=%-2d hl=%d l=%4d %s: %s", n.Span.Start, n.Depth,
				n.Span.HeaderLen, n.Element.Len(), kind, n.Element.Tag())
			if preview := previewValue(n.Element); preview != "" {
				fmt.Fprintf(sb, " :%s", preview)
			}
			sb.WriteByte('\n')
			write(n.Children)
		}
	}
	write(nodes)
	return nil
}

// previewValue renders the content of a primitive element on one line.
func previewValue(e tlv.Element) string {
	switch e.Tag() {
	case tlv.TagBoolean:
		if b, err := e.Bool(); err == nil {
			if b {
				return "TRUE"
			}
			return "FALSE"
		}
	case tlv.TagInteger:
		if v, err := e.Uint64(); err == nil {
			return fmt.Sprintf("%d", v)
		}
		return strings.ToUpper(hexPreview(e.Value()))
	case tlv.TagObjectIdentifier:
		if dotted, err := e.ObjectIdentifier(); err == nil {
			if name := oid.Lookup(dotted); name != dotted {
				return fmt.Sprintf("%s (%s)", name, dotted)
			}
			return dotted
		}
	case tlv.TagUTF8String, tlv.TagPrintableString, tlv.TagTeletexString,
		tlv.TagIA5String, tlv.TagVisibleString:
		if s, err := e.Text(); err == nil {
			return s
		}
	case tlv.TagUTCTime, tlv.TagGeneralizedTime:
		if t, ok := e.Time(); ok {
			return t.UTC().Format("2006-01-02 15:04:05 MST")
		}
		return e.Latin1()
	case tlv.TagOctetString, tlv.TagBitString:
		return hexPreview(e.Value())
	case tlv.TagNull, tlv.TagSequence, tlv.TagSet:
		return ""
	}
	if !e.Tag().Constructed() && e.Len() > 0 {
		return hexPreview(e.Value())
	}
	return ""
}

func hexPreview(b []byte) string {
	if len(b) > maxPreview {
		return hex.EncodeToString(b[:maxPreview]) + "..."
	}
	return hex.EncodeToString(b)
}
