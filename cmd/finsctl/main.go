// Command finsctl is a thin command-line front end over the fins
// client: one subcommand per session operation, configured from flags,
// environment variables, or a config file via viper.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
