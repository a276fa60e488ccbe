package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/joeweiss/gowamd/pkg/gowamd"
)

var (
	rootCmd = &cobra.Command{
		Use:   "gowamd-extract [wav files...]",
		Short: "Extract recorder metadata from WAV files",
		Long:  "gowamd-extract reads Wildlife Acoustics wamd and GUANO metadata chunks from WAV recordings using the gowamd library.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := gowamd.ExtractOptions{IncludeUnknown: includeUnknown}
			ctx := cmd.Context()
			if hexMode {
				if len(args) == 0 {
					return runInteractive(ctx, opts)
				}
				for _, arg := range args {
					if err := runHex(ctx, opts, arg); err != nil {
						return err
					}
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("provide at least one WAV file, or --hex for raw chunk payloads")
			}
			for _, path := range args {
				if err := runFile(ctx, opts, path); err != nil {
					return err
				}
			}
			return nil
		},
	}

	includeUnknown bool
	hexMode        bool
	hexChunkID     string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&includeUnknown, "include-unknown", false, "report unrecognized wamd tags as unknown_XX fields")
	rootCmd.PersistentFlags().BoolVar(&hexMode, "hex", false, "treat arguments as hex-encoded chunk payloads instead of file paths")
	rootCmd.PersistentFlags().StringVar(&hexChunkID, "chunk", "wamd", "chunk ID for --hex payloads (wamd or guan)")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

func runInteractive(ctx context.Context, opts gowamd.ExtractOptions) error {
	scanner := bufio.NewScanner(os.Stdin)
	logrus.Infof("gowamd hex mode. Paste a %s chunk payload and press Enter (Ctrl+D to exit).", hexChunkID)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runHex(ctx, opts, line); err != nil {
			logrus.WithError(err).Error("failed to decode chunk")
		}
	}
	return scanner.Err()
}

func runHex(ctx context.Context, opts gowamd.ExtractOptions, hex string) error {
	result, err := gowamd.DecodeChunkHex(ctx, hexChunkID, hex, opts)
	if err != nil {
		return err
	}
	fmt.Println(result.String())
	return nil
}

func runFile(ctx context.Context, opts gowamd.ExtractOptions, path string) error {
	results, err := gowamd.ExtractFileWithOptions(ctx, path, opts)
	if err != nil {
		return err
	}
	for _, result := range results {
		fmt.Println(result.String())
	}
	return nil
}
