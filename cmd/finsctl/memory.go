package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/omron-fins/client/fins"
)

var readCmd = &cobra.Command{
	Use:   "read <address> <count>",
	Short: "Read one or more contiguous words",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := strconv.ParseUint(args[1], 10, 16)
		if err != nil {
			return fmt.Errorf("finsctl: invalid count %q: %w", args[1], err)
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Disconnect()

		words, err := client.Read(fins.AddrString(args[0]), uint16(count))
		if err != nil {
			return err
		}
		for i, w := range words {
			fmt.Printf("%s+%d = %d\n", args[0], i, w)
		}
		return nil
	},
}

var writeCmd = &cobra.Command{
	Use:   "write <address> <value>...",
	Short: "Write one or more contiguous words",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		values := make([]uint16, len(args)-1)
		for i, a := range args[1:] {
			v, err := strconv.ParseUint(a, 10, 16)
			if err != nil {
				return fmt.Errorf("finsctl: invalid value %q: %w", a, err)
			}
			values[i] = uint16(v)
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Disconnect()

		if err := client.Write(fins.AddrString(args[0]), values); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var readMultipleCmd = &cobra.Command{
	Use:   "read-multiple <address>...",
	Short: "Read up to 32 disparate addresses in a single command",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addrs := make([]fins.AddressArg, len(args))
		for i, a := range args {
			addrs[i] = fins.AddrString(a)
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Disconnect()

		result, err := client.ReadMultiple(addrs)
		if err != nil {
			return err
		}
		for _, r := range result {
			fmt.Printf("%s = %d\n", r.Address, r.Value)
		}
		return nil
	},
}

var readRealCmd = &cobra.Command{
	Use:   "read-real <address>",
	Short: "Read a 32-bit OMRON REAL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Disconnect()

		v, err := client.ReadReal(fins.AddrString(args[0]))
		if err != nil {
			return err
		}
		fmt.Printf("%s = %g\n", args[0], v)
		return nil
	},
}

var writeRealCmd = &cobra.Command{
	Use:   "write-real <address> <value>",
	Short: "Write a 32-bit OMRON REAL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseFloat(args[1], 32)
		if err != nil {
			return fmt.Errorf("finsctl: invalid value %q: %w", args[1], err)
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Disconnect()

		if err := client.WriteReal(fins.AddrString(args[0]), float32(v)); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}
