/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Verbose bool
var Debug bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fieldstats",
	Short: "Daily synthetic remote-sensing rasters and per-field zonal statistics",
	Long: `fieldstats synthesizes daily vegetation, soil moisture and temperature
	rasters over a bounding box, computes zonal statistics for a set of field
	polygons, and writes tabular and plot artifacts to an object store:
	./fieldstats run --date 2024-05-01 [store_dir]
	./fieldstats changes --date 2024-05-02 [store_dir]`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "Verbose output")
	err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	if err != nil {
		logrus.Exit(1)
	}
	rootCmd.PersistentFlags().BoolVarP(&Debug, "debug", "d", false, "Debug output")
	err = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	if err != nil {
		logrus.Exit(1)
	}

	// Bounding box defaults; a bounds.json object in the store overrides
	// these at run time.
	viper.SetDefault("bbox.minx", 10.0)
	viper.SetDefault("bbox.miny", 45.0)
	viper.SetDefault("bbox.maxx", 11.0)
	viper.SetDefault("bbox.maxy", 46.0)
}

func setLogLevels() {
	if viper.GetBool("debug") {
		logrus.SetLevel(logrus.DebugLevel)
	} else if viper.GetBool("verbose") {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}
