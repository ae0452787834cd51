package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ilya-bobyr/pythnet-heisenberg/sim"
	"github.com/ilya-bobyr/pythnet-heisenberg/sim/ledger"
)

var (
	deriveSnapshotPath string
	deriveCheck        bool
	deriveJSON         bool
)

// deriveCmd derives caps for a real ledger snapshot
var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive stake caps for a ledger snapshot dump",
	Long: `Derive stake caps for a ledger snapshot dump.

The snapshot goes through the same validated constructor as synthetic
scenarios, and the output is ordered by publisher key so a downstream
parameter-update transaction serializes deterministically.`,
	Run: func(cmd *cobra.Command, args []string) {
		snapshot, err := ledger.LoadSnapshot(deriveSnapshotPath)
		if err != nil {
			logrus.Fatalf("Loading snapshot: %v", err)
		}

		params := sim.CapParameters{
			Ceiling: paramCeiling,
			Floor:   paramFloor,
			M:       paramM,
			Z:       paramZ,
		}
		assignment, err := sim.DeriveCaps(snapshot, params)
		if err != nil {
			logrus.Fatalf("Derivation failed: %v", err)
		}

		if deriveCheck {
			violations := sim.CheckInvariants(snapshot, params, assignment)
			for _, v := range violations {
				logrus.Errorf("Invariant violation: %s", v)
			}
			if len(violations) > 0 {
				os.Exit(1)
			}
			logrus.Infof("All invariants hold for %d publishers", snapshot.NumPublishers())
		}

		if deriveJSON {
			data, err := assignment.MarshalJSON()
			if err != nil {
				logrus.Fatalf("Encoding assignment: %v", err)
			}
			fmt.Printf("%s\n", data)
			return
		}
		for _, e := range assignment.Entries() {
			fmt.Printf("%s %d\n", e.Publisher, e.Cap)
		}
	},
}

func init() {
	deriveCmd.Flags().StringVar(&deriveSnapshotPath, "snapshot", "", "Ledger snapshot dump (JSON)")
	deriveCmd.Flags().BoolVar(&deriveCheck, "check", true, "Run the invariant battery on the result")
	deriveCmd.Flags().BoolVar(&deriveJSON, "json", false, "Emit the assignment as a JSON object")
	_ = deriveCmd.MarkFlagRequired("snapshot")
	addParamFlags(deriveCmd)

	rootCmd.AddCommand(deriveCmd)
}
