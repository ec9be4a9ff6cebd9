package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gameradar/radar/internal/contracts"
)

var scanHorizon string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one scan and post the digest",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanHorizon, "horizon", "7d", "scan horizon: 3d, 7d or 30d")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	horizon, err := contracts.ParseHorizon(scanHorizon)
	if err != nil {
		return err
	}

	_, _, pipe, rdb, err := bootstrap()
	if err != nil {
		return err
	}
	defer rdb.Close()

	digest, err := pipe.Run(context.Background(), horizon)
	if err != nil {
		return err
	}

	fmt.Printf("Scanned %d candidates for horizon %s\n", digest.Candidates, digest.Horizon)
	if len(digest.Games) == 0 {
		fmt.Println("Nothing cleared the notification threshold.")
	}
	for _, g := range digest.Games {
		fmt.Printf("  %2d. %-30s %6.1f pts\n", g.Rank, g.Game.Name, g.Score)
	}
	if len(digest.Degraded) > 0 {
		fmt.Printf("%d game(s) scored with partial data.\n", len(digest.Degraded))
	}
	return nil
}
