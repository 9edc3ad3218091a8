package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/philipparndt/gogdf/pkg/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [file...]",
	Short: "Re-validate GDF files whenever they change",
	Long:  "Validate the files once, then watch them and validate again after every change until interrupted.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Wait this long after the last change before validating")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	var mu sync.Mutex
	check := func(filename string) {
		mu.Lock()
		defer mu.Unlock()
		if _, err := validateFile(out, filename); err != nil {
			logger.Error("validation failed", zap.String("file", filename), zap.Error(err))
		}
	}

	for _, filename := range args {
		check(filename)
	}

	fw, err := watcher.NewFileWatcher(watchDebounce, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Watch(args, func(changed string) {
		mu.Lock()
		fmt.Fprintf(out, "\nFile changed: %s\n", changed)
		mu.Unlock()
		check(changed)
	}); err != nil {
		return err
	}

	fmt.Fprintf(out, "Watching %d file(s) for changes, press Ctrl+C to stop\n", len(args))
	fw.Run(ctx)
	return nil
}
