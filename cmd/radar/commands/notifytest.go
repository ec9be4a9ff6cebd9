package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gameradar/radar/pkg/httputil"

	"github.com/gameradar/radar/internal/contracts"
	"github.com/gameradar/radar/internal/notify"
)

var notifyTestHorizon string

var notifyTestCmd = &cobra.Command{
	Use:   "notify-test",
	Short: "Send a sample digest to verify the webhook",
	RunE:  runNotifyTest,
}

func init() {
	notifyTestCmd.Flags().StringVar(&notifyTestHorizon, "horizon", "7d", "webhook horizon: 3d, 7d or 30d")
	rootCmd.AddCommand(notifyTestCmd)
}

func runNotifyTest(cmd *cobra.Command, _ []string) error {
	horizon, err := contracts.ParseHorizon(notifyTestHorizon)
	if err != nil {
		return err
	}

	cfg, log, _, rdb, err := bootstrap()
	if err != nil {
		return err
	}
	defer rdb.Close()

	digest := &contracts.Digest{
		Horizon:     horizon,
		GeneratedAt: time.Now(),
		Candidates:  1,
		Games: []contracts.RankedGame{{
			Rank:  1,
			Game:  contracts.Game{Name: "Webhook Test Game", ViewerCount: 1234},
			Score: 42,
			Tags:  []string{"test delivery"},
		}},
	}

	notifier := notify.NewNotifier(httputil.New(log), log)
	if err := notifier.Send(context.Background(), cfg.WebhookFor(horizon.String()), digest); err != nil {
		return err
	}

	fmt.Println("Test digest delivered.")
	return nil
}
