package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quill-lang/quill/internal/cli/config"
	"github.com/quill-lang/quill/internal/cli/ui"
	"github.com/quill-lang/quill/internal/derive"
	"github.com/quill-lang/quill/internal/derive/descriptor"
	deriveerrors "github.com/quill-lang/quill/internal/derive/errors"
	"github.com/quill-lang/quill/internal/derive/meta"
)

var (
	deriveTarget   string
	deriveJSON     bool
	deriveVerbose  bool
	deriveMetadata bool
	deriveOut      string
)

func init() {
	deriveCmd.Flags().StringVar(&deriveTarget, "target", "", "Derive target: builder or debug (default from quill.yaml)")
	deriveCmd.Flags().BoolVar(&deriveJSON, "json", false, "Output errors in JSON format")
	deriveCmd.Flags().BoolVar(&deriveVerbose, "verbose", false, "Show detailed synthesis output")
	deriveCmd.Flags().BoolVar(&deriveMetadata, "metadata", false, "Also write synthesis metadata JSON next to the output")
	deriveCmd.Flags().StringVar(&deriveOut, "out", "", "Write generated code to this file instead of stdout")
}

var deriveCmd = &cobra.Command{
	Use:   "derive <descriptor.json>",
	Short: "Synthesize implementation code for one record descriptor",
	Long:  "Read a parsed record descriptor and emit the derived builder or debug implementation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()
		path := args[0]

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		target := cfg.Derive.Target
		if deriveTarget != "" {
			target = deriveTarget
		}
		emitMeta := cfg.Derive.Metadata || deriveMetadata
		jsonErrors := cfg.Output.JSON || deriveJSON

		logger := zap.NewNop()
		if deriveVerbose {
			logger, err = zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
		}
		defer logger.Sync() //nolint:errcheck // best-effort flush on exit

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open descriptor: %w", err)
		}
		defer f.Close()

		record, err := descriptor.Decode(f)
		if err != nil {
			return err
		}
		logger.Info("decoded record descriptor",
			zap.String("record", record.Name),
			zap.Int("fields", len(record.Fields)),
			zap.Int("params", len(record.Params)),
		)

		artifact, err := derive.Expand(record, derive.Target(target))
		if err != nil {
			var derr *deriveerrors.DeriveError
			if errors.As(err, &derr) {
				derr.WithFile(path)
				return reportDeriveError(derr, jsonErrors, cfg.Output.NoColor)
			}
			return err
		}

		logger.Info("synthesis complete",
			zap.String("target", target),
			zap.String("artifact_id", artifact.Meta.ArtifactID),
			zap.Duration("elapsed", time.Since(startTime)),
		)

		if deriveOut != "" {
			if err := os.WriteFile(deriveOut, []byte(artifact.Code), 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		} else {
			fmt.Print(artifact.Code)
		}

		if emitMeta {
			data, err := meta.Serialize(artifact.Meta)
			if err != nil {
				return err
			}
			metaPath := metadataPath(deriveOut, path)
			if err := os.WriteFile(metaPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write metadata: %w", err)
			}
			logger.Info("wrote synthesis metadata", zap.String("path", metaPath))
		}

		return nil
	},
}

// reportDeriveError prints a structured derive error and returns a bare
// failure so cobra does not duplicate the message.
func reportDeriveError(derr *deriveerrors.DeriveError, jsonOutput, noColor bool) error {
	if jsonOutput {
		out, err := derr.ToJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, out)
	} else {
		fmt.Fprint(os.Stderr, ui.FormatDeriveError(derr, noColor))
	}
	return fmt.Errorf("derive failed")
}

// metadataPath picks where synthesis metadata lands: next to the output
// file when one was given, else next to the descriptor.
func metadataPath(outPath, descriptorPath string) string {
	base := descriptorPath
	if outPath != "" {
		base = outPath
	}
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)] + ".meta.json"
}
