package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fieldstats/pipeline"
)

var changesDate string

// changesCmd represents the changes command
var changesCmd = &cobra.Command{
	Use:   "changes [store_dir]",
	Short: "Compute day-over-day changes from two persisted daily tables",
	Long: `Read the given date's and the previous day's persisted records and
	write the per-field change table and summary panels. A missing previous
	day is skipped quietly; a missing current day is an error (run the
	daily stage first).`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevels()

		date, err := parseDate(viper.GetString("changesDate"))
		if err != nil {
			logrus.Fatal(err)
		}
		store := storeFrom(args)
		bbox, err := resolveBBox(store)
		if err != nil {
			logrus.Fatal(err)
		}

		// The change stage only reads persisted tables; raster settings
		// are irrelevant but the pipeline still validates its config.
		p, err := pipeline.New(store, pipeline.Config{BBox: bbox, Resolution: viper.GetFloat64("resolution")})
		if err != nil {
			logrus.Fatal(err)
		}
		if _, err := p.RunChanges(date); err != nil {
			logrus.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(changesCmd)

	changesCmd.Flags().StringVar(&changesDate, "date", "", "Partition date (YYYY-MM-DD), defaults to today")
	err := viper.BindPFlag("changesDate", changesCmd.Flags().Lookup("date"))
	if err != nil {
		logrus.Exit(1)
	}
}
