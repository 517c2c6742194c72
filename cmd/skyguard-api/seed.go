package main

import (
	"context"

	"github.com/chasta/skyguard/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default services, projects and testimonials",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		s := store.NewStore(db)
		defer s.Close()

		if err := s.Seed(context.Background()); err != nil {
			zap.S().Fatalw("seeding content", "error", err)
		}
		return nil
	},
}
