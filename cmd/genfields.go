package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fieldstats/fields"
)

var genCount int
var genSeed int64
var genMinSize float64
var genMaxSize float64

// genfieldsCmd represents the genfields command
var genfieldsCmd = &cobra.Command{
	Use:   "genfields [store_dir]",
	Short: "Generate and store a randomized field definition set",
	Long: `Generate randomized rectangular field polygons with crop metadata and
	planting dates, replacing any field_definitions.json already in the
	store. The daily stage generates fields on demand; this command exists
	to pre-seed or reset them.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevels()

		store := storeFrom(args)
		bbox, err := resolveBBox(store)
		if err != nil {
			logrus.Fatal(err)
		}

		gen := fields.NewGenerator(viper.GetInt64("genSeed"))
		flds, err := gen.Generate(bbox, viper.GetInt("genCount"), viper.GetFloat64("genMinSize"), viper.GetFloat64("genMaxSize"))
		if err != nil {
			logrus.Fatal(err)
		}
		data, err := fields.MarshalFields(flds)
		if err != nil {
			logrus.Fatal(err)
		}
		if err := store.Put("field_definitions.json", data); err != nil {
			logrus.Fatal(err)
		}
		logrus.Infof("stored %d field definitions", len(flds))
	},
}

func init() {
	rootCmd.AddCommand(genfieldsCmd)

	genfieldsCmd.Flags().IntVarP(&genCount, "count", "c", 8, "Number of fields to generate")
	err := viper.BindPFlag("genCount", genfieldsCmd.Flags().Lookup("count"))
	if err != nil {
		logrus.Exit(1)
	}

	genfieldsCmd.Flags().Int64Var(&genSeed, "seed", 42, "Random seed")
	err = viper.BindPFlag("genSeed", genfieldsCmd.Flags().Lookup("seed"))
	if err != nil {
		logrus.Exit(1)
	}

	genfieldsCmd.Flags().Float64Var(&genMinSize, "minSize", 0.05, "Minimum field size as a fraction of the extent")
	err = viper.BindPFlag("genMinSize", genfieldsCmd.Flags().Lookup("minSize"))
	if err != nil {
		logrus.Exit(1)
	}

	genfieldsCmd.Flags().Float64Var(&genMaxSize, "maxSize", 0.15, "Maximum field size as a fraction of the extent")
	err = viper.BindPFlag("genMaxSize", genfieldsCmd.Flags().Lookup("maxSize"))
	if err != nil {
		logrus.Exit(1)
	}
}
