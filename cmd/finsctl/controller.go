package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Read controller run/program/error status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Disconnect()

		status, err := client.GetStatus()
		if err != nil {
			return err
		}
		fmt.Printf("run=%t program=%t fatal=%t non_fatal=%t\n",
			status.RunMode, status.ProgramMode, status.FatalError, status.NonFatalError)
		return nil
	},
}

var cpuDataCmd = &cobra.Command{
	Use:   "cpu-data",
	Short: "Read controller model and firmware version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Disconnect()

		data, err := client.GetCPUUnitData()
		if err != nil {
			return err
		}
		fmt.Printf("model=%s version=%s\n", data.ControllerModel, data.ControllerVersion)
		return nil
	},
}

var clockReadCmd = &cobra.Command{
	Use:   "clock-read",
	Short: "Read the controller's real-time clock",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Disconnect()

		clock, err := client.ReadClock()
		if err != nil {
			return err
		}
		fmt.Printf("%04d-%02d-%02d %02d:%02d:%02d (day %d)\n",
			clock.Year, clock.Month, clock.Day, clock.Hour, clock.Minute, clock.Second, clock.DayOfWeek)
		return nil
	},
}

var clockWriteCmd = &cobra.Command{
	Use:   "clock-write <year> <month> <day> <hour> <minute> <second>",
	Short: "Set the controller's real-time clock",
	Args:  cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		var clock [6]int
		for i := range clock {
			n, err := parseInt(args[i])
			if err != nil {
				return err
			}
			clock[i] = n
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Disconnect()

		err = client.WriteClock(clockFromInts(clock))
		if err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Set the controller to run mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Disconnect()
		if err := client.Run(); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Set the controller to stop (program) mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Disconnect()
		if err := client.Stop(); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Round-trip a lightweight health probe",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Disconnect()
		if err := client.Ping(); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}
