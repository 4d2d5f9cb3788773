package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ethcore-go/ethcore/internal/config"
	"github.com/ethcore-go/ethcore/internal/listener"
	"github.com/ethcore-go/ethcore/internal/provider"
	"github.com/ethcore-go/ethcore/internal/storage"
	"github.com/ethcore-go/ethcore/pkg/address"
	"github.com/ethcore-go/ethcore/pkg/hexutil"
	"github.com/ethcore-go/ethcore/pkg/models"
)

var (
	watchRPCEndpoint   string
	watchAddresses     []string
	watchConfirmations uint64
	watchPollInterval  time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch addresses for incoming/outgoing transactions",
	Long: `Polls a JSON-RPC node for new blocks and prints every transaction
touching --address, the same confirmation-tracking and reorg-detection
internal/listener.PollingListener runs against a provider.BlockFetcher.

  $ ethctl watch --rpc http://localhost:8545 --address 0x... --confirmations 6`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(watchAddresses) == 0 {
			return fmt.Errorf("--address is required (repeatable)")
		}

		cfg := config.FromEnv()
		endpoint := watchRPCEndpoint
		if endpoint == "" {
			endpoint = cfg.RPCEndpoint
		}
		pollInterval := watchPollInterval
		if pollInterval == 0 {
			pollInterval = cfg.PollInterval
		}

		p := provider.NewHTTPProvider(endpoint, nil)
		fetcher, err := provider.NewBlockFetcher(p)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}

		watchStore := storage.NewMemoryWatchStore()
		for _, a := range watchAddresses {
			addr, err := address.Parse(a)
			if err != nil {
				return fmt.Errorf("--address %q: %w", a, err)
			}
			if err := watchStore.Add(addr); err != nil {
				return fmt.Errorf("watch: %w", err)
			}
		}

		l := listener.NewPollingListener(pollInterval, watchStore, fetcher, listener.PollingConfig{
			ConfirmationDepth: watchConfirmations,
		})
		if err := l.Start(context.Background()); err != nil {
			return fmt.Errorf("watch: start listener: %w", err)
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		for {
			select {
			case ev, ok := <-l.Events():
				if !ok {
					return nil
				}
				printBlockEvent(ev)
			case <-quit:
				return l.Stop()
			}
		}
	},
}

func printBlockEvent(ev models.BlockEvent) {
	if jsonOut {
		if err := printJSON(ev); err != nil {
			printError(err)
		}
		return
	}
	status := "pending"
	switch {
	case ev.Reorged:
		status = "reorged"
	case ev.Confirmed:
		status = "confirmed"
	}
	fmt.Printf("block=%d tx=%s from=%s to=%s value=%s status=%s\n",
		ev.BlockNumber, hexutil.Encode(ev.TxHash[:]), address.ToChecksum(ev.From), address.ToChecksum(ev.To),
		ev.Amount.String(), status)
}

func init() {
	watchCmd.Flags().StringVar(&watchRPCEndpoint, "rpc", "", "JSON-RPC HTTP endpoint (defaults to RPC_ENDPOINT/config default)")
	watchCmd.Flags().StringSliceVar(&watchAddresses, "address", nil, "address to watch, repeatable")
	watchCmd.Flags().Uint64Var(&watchConfirmations, "confirmations", 12, "blocks required before a transaction is marked confirmed")
	watchCmd.Flags().DurationVar(&watchPollInterval, "poll-interval", 0, "block poll interval (defaults to POLL_INTERVAL/config default)")
	rootCmd.AddCommand(watchCmd)
}
