// givegate is the operator CLI for a local escrow ledger store: it opens
// the badger state named by the environment and inspects or mutates it
// in-process. Caller identity for mutating commands is supplied with
// --as and trusted, the same way any boundary in front of the ledger
// supplies it.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"givegate/config"
	"givegate/ledger"
	"givegate/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	cfg    config.Config
	st     *store.Badger
	ledger *ledger.Ledger
}

func (a *app) open() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.StateDir)
	if err != nil {
		return err
	}
	log := zerolog.Nop()
	if cfg.Debug {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	led, err := ledger.New(st, ledger.Params{
		Owner:  ledger.Address(cfg.Owner),
		FeeBps: cfg.FeeBps,
		Tiers:  cfg.Tiers,
	}, ledger.WithLogger(log))
	if err != nil {
		st.Close()
		return err
	}
	a.cfg = cfg
	a.st = st
	a.ledger = led
	return nil
}

func (a *app) close() {
	if a.st != nil {
		a.st.Close()
	}
}

func rootCmd() *cobra.Command {
	a := &app{}
	var asAccount string

	root := &cobra.Command{
		Use:           "givegate",
		Short:         "Inspect and operate a milestone-gated escrow ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.PersistentFlags().StringVar(&asAccount, "as", "", "caller account for mutating commands")

	root.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show owner, pause flag, fee and pool balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.ledger.Owner()
			if err != nil {
				return err
			}
			paused, err := a.ledger.Paused()
			if err != nil {
				return err
			}
			fee, err := a.ledger.ProtocolFeeBps()
			if err != nil {
				return err
			}
			pool, err := a.ledger.RewardPoolBalance()
			if err != nil {
				return err
			}
			return printJSON(map[string]any{
				"owner":       owner,
				"paused":      paused,
				"fee_bps":     fee,
				"reward_pool": pool,
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "projects",
		Short: "List all project ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := a.ledger.ListProjectIDs()
			if err != nil {
				return err
			}
			return printJSON(ids)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "project <id>",
		Short: "Show one project and its milestones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("bad project id %q", args[0])
			}
			prj, err := a.ledger.GetProject(id)
			if err != nil {
				return err
			}
			milestones := make([]ledger.Milestone, 0, prj.MilestoneCount)
			for i := 0; i < prj.MilestoneCount; i++ {
				ms, err := a.ledger.GetMilestone(id, i)
				if err != nil {
					return err
				}
				milestones = append(milestones, ms)
			}
			return printJSON(map[string]any{
				"project":    prj,
				"milestones": milestones,
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "donor <account>",
		Short: "Show a donor profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := a.ledger.GetDonorProfile(ledger.Address(args[0]))
			if err != nil {
				return err
			}
			return printJSON(prof)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "register-ngo <account> <name>",
		Short: "Verify an organization (owner only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := callerFlag(asAccount)
			if err != nil {
				return err
			}
			return a.ledger.RegisterNGO(caller, ledger.Address(args[0]), args[1])
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "pause",
		Short: "Pause value-moving operations (owner only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := callerFlag(asAccount)
			if err != nil {
				return err
			}
			return a.ledger.Pause(caller)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "unpause",
		Short: "Resume value-moving operations (owner only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := callerFlag(asAccount)
			if err != nil {
				return err
			}
			return a.ledger.Unpause(caller)
		},
	})

	return root
}

func callerFlag(as string) (ledger.Address, error) {
	if as == "" {
		return "", fmt.Errorf("--as <account> is required for mutating commands")
	}
	return ledger.Address(as), nil
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
