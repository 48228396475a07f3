package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coastlab/buoyspectra/logging"
)

var (
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "buoyspectra",
	Short: "Directional wave spectrum estimation from buoy displacement records",
	Long: `buoyspectra estimates the directional distribution of ocean wave energy
from a buoy's three-axis displacement time series (heave, surge, sway).

The displacement record is converted into a cross-spectral matrix with
Welch's method, reduced to the five directional Fourier moments, and refined
into a full direction-by-frequency energy surface with one of three
estimators: MLM, IMLM or MEM.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is ./buoyspectra.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("buoyspectra")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("BUOYSPECTRA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "using config file: %s\n", viper.ConfigFileUsed())
	}

	if viper.GetBool("verbose") {
		logging.SetLevel(logging.DebugLevel)
	}
}
