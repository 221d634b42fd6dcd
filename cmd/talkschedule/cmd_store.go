package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"talkschedule/config"
	"talkschedule/internal/schedule"
)

var (
	slotsDate  string
	agendaDate string
	asJSON     bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty store with a generated week of talks",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer st.close()
		svc := newTalkService(cfg, st.repo, nil, logger)
		n, err := svc.Seed(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d talks\n", n)
		return nil
	},
}

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Print the free roster slots of a day (default tomorrow)",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer st.close()
		svc := newTalkService(cfg, st.repo, nil, logger)
		slots, err := svc.AvailableSlots(cmd.Context(), slotsDate)
		if err != nil {
			return err
		}
		if asJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(slots)
		}
		for _, s := range slots {
			fmt.Fprintf(cmd.OutOrStdout(), "%s-%s\n", s.Slot, schedule.SlotOf(s.EndTime.In(cfg.Location)))
		}
		return nil
	},
}

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Print the laid out agenda of a day (default tomorrow)",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer st.close()
		svc := newTalkService(cfg, st.repo, nil, logger)
		entries, err := svc.Agenda(cmd.Context(), agendaDate)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, e := range entries {
			what := string(e.Kind)
			if e.Kind == schedule.KindTalk {
				what = e.Item.Title
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", schedule.SlotOf(e.StartTime), schedule.SlotOf(e.EndTime), what)
		}
		return w.Flush()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema (postgres and sqlite)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.StoreDriver == config.DriverMemory {
			return fmt.Errorf("migrate needs STORE_DRIVER=postgres or sqlite")
		}
		// openStore applies the schema for both persistent drivers.
		st, err := openStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer st.close()
		fmt.Fprintf(cmd.OutOrStdout(), "schema applied (%s)\n", cfg.StoreDriver)
		return nil
	},
}

var rebuildCategoriesCmd = &cobra.Command{
	Use:   "rebuild-categories",
	Short: "Re-derive the category list from all stored talks",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer st.close()
		if err := st.repo.RebuildCategories(cmd.Context()); err != nil {
			return err
		}
		categories, err := st.repo.ListCategories(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d categories\n", len(categories))
		return nil
	},
}

func init() {
	slotsCmd.Flags().StringVar(&slotsDate, "date", "", "Day (YYYY-MM-DD), default tomorrow")
	slotsCmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	agendaCmd.Flags().StringVar(&agendaDate, "date", "", "Day (YYYY-MM-DD), default tomorrow")

	rootCmd.AddCommand(seedCmd, slotsCmd, agendaCmd, migrateCmd, rebuildCategoriesCmd)
}
