package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JerrySundi/honeypot/internal/adapters/gateway"
	"github.com/JerrySundi/honeypot/internal/adapters/reply"
	"github.com/JerrySundi/honeypot/internal/core"
	"github.com/JerrySundi/honeypot/internal/di"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	// Build the dependency injection container
	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run drives one engagement session from a transcript, one scammer message
// per line
func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	engine *core.EngagementService,
	generator core.ReplyGenerator,
) error {
	defer logger.Sync()

	// Read the transcript from file or stdin
	var transcript io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", flags.InputFile))
		}
		defer file.Close()
		transcript = file
		logger.Info("Reading transcript from file", zap.String("file", flags.InputFile))
	} else {
		transcript = os.Stdin
		logger.Info("Reading transcript from stdin")
	}

	cli := gateway.NewCLIGateway(engine, generator, reply.NewFallback(logger), logger, flags.Verbose)

	ctx := context.Background()
	scanner := bufio.NewScanner(transcript)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		turn, err := cli.ProcessMessage(ctx, flags.SessionID, line)
		if err != nil {
			return err
		}
		if turn.Terminated {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error("Failed to read transcript", zap.Error(err))
		return err
	}

	// Close any resources that need closing
	if closer, ok := generator.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close reply generator", zap.Error(err))
		}
	}

	return nil
}
