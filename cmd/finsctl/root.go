package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/omron-fins/client/fins"
)

var log = logrus.StandardLogger()

var rootCmd = &cobra.Command{
	Use:          "finsctl",
	Short:        "Talk to an OMRON PLC over FINS",
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("host", "", "PLC host or IP address (required)")
	rootCmd.PersistentFlags().Int("port", 9600, "FINS port")
	rootCmd.PersistentFlags().String("protocol", "udp", "transport: udp or tcp")
	rootCmd.PersistentFlags().Duration("timeout", 5*time.Second, "per-operation timeout")
	rootCmd.PersistentFlags().Uint8("plc-node", 0, "PLC node number")
	rootCmd.PersistentFlags().Uint8("pc-node", 1, "local (PC) node number")
	rootCmd.PersistentFlags().String("config", "", "config file (default: $HOME/.finsctl.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("protocol", rootCmd.PersistentFlags().Lookup("protocol"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("plc-node", rootCmd.PersistentFlags().Lookup("plc-node"))
	viper.BindPFlag("pc-node", rootCmd.PersistentFlags().Lookup("pc-node"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(
		readCmd,
		writeCmd,
		readMultipleCmd,
		readRealCmd,
		writeRealCmd,
		statusCmd,
		cpuDataCmd,
		clockReadCmd,
		clockWriteCmd,
		runCmd,
		stopCmd,
		pingCmd,
		watchCmd,
	)
}

func initConfig() {
	viper.SetEnvPrefix("FINSCTL")
	viper.AutomaticEnv()

	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".finsctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("$HOME")
	}
	if err := viper.ReadInConfig(); err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("finsctl: loaded config file")
	}

	if viper.GetBool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}
}

// newClient builds and connects a fins.Client from the resolved
// viper/flag configuration.
func newClient() (*fins.Client, error) {
	host := viper.GetString("host")
	if host == "" {
		return nil, fmt.Errorf("finsctl: --host is required")
	}

	settings, err := fins.NewConfig(fins.ConfigOptions{
		Host:     host,
		Port:     viper.GetInt("port"),
		Protocol: fins.Protocol(viper.GetString("protocol")),
		PLCNode:  fins.NodeNumber(uint8(viper.GetUint("plc-node"))),
		PCNode:   fins.NodeNumber(uint8(viper.GetUint("pc-node"))),
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}
	settings.Timeout = viper.GetDuration("timeout")

	client, err := fins.NewClient(settings)
	if err != nil {
		return nil, err
	}
	if err := client.Connect(); err != nil {
		return nil, err
	}
	return client, nil
}
