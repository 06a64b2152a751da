package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"monopoly/scorer"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// serveScorerCmd represents the serve-scorer command
var serveScorerCmd = &cobra.Command{
	Use:   "serve-scorer",
	Short: "Serve the built-in linear scorer over HTTP",
	Long: `Starts an HTTP server answering POST /score with action scores from the
built-in linear scorer, for use as --scorer-url by other simulations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(cmd, serveKeys)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              c.Listen,
			Handler:           scorer.NewServer(scorer.NewLinear(c.ScorerSeed)),
			ReadHeaderTimeout: 5 * time.Second,
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdown)
		}()

		log.Info().Msgf("scorer listening on %s", c.Listen)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveScorerCmd.Flags().String("listen", ":8080", "address to listen on")
	serveScorerCmd.Flags().Uint64("scorer-seed", 1, "seed of the linear scorer weights")
	rootCmd.AddCommand(serveScorerCmd)
}

var serveKeys = map[string]string{
	"listen":      "listen",
	"scorer-seed": "scorer_seed",
}
