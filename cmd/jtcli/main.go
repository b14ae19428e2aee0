// jtcli — command-line front end for the Joule-Thomson throttling workflow.
//
// Usage:
//
//	jtcli calc --fluid methane --tin 150 --pin 50 --pout 1
//	jtcli fluids
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"JTSim/internal/calc/jt"
	"JTSim/internal/fluids"
)

var version = "dev"

func main() {
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "jtcli",
		Short:         "Joule-Thomson valve calculator",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	var fluid, tin, pin, pout string
	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the outlet state of an isenthalpic expansion",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := jt.ParseInput(fluid, tin, pin, pout)
			if err != nil {
				return err
			}
			res, err := jt.Calculate(input)
			if err != nil {
				return err
			}
			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(res)
			}
			fmt.Println(res.OutletTempDisplay)
			fmt.Println()
			fmt.Print(res.Report)
			return nil
		},
	}
	calcCmd.Flags().StringVar(&fluid, "fluid", "methane", "Fluid name")
	calcCmd.Flags().StringVar(&tin, "tin", "", "Inlet temperature, K")
	calcCmd.Flags().StringVar(&pin, "pin", "", "Inlet pressure, bar")
	calcCmd.Flags().StringVar(&pout, "pout", "", "Outlet pressure, bar")
	_ = calcCmd.MarkFlagRequired("tin")
	_ = calcCmd.MarkFlagRequired("pin")
	_ = calcCmd.MarkFlagRequired("pout")

	fluidsCmd := &cobra.Command{
		Use:   "fluids",
		Short: "List the fluids in the property database",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := fluids.Names()
			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(names)
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}

	rootCmd.AddCommand(calcCmd, fluidsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
