package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/erolls-portal/internal/models"
	"github.com/noah-isme/erolls-portal/internal/service"
	"github.com/noah-isme/erolls-portal/pkg/config"
)

type evaluateOptions struct {
	recordPath   string
	actor        models.Actor
	role         string
	match        string
	action       string
	reason       string
	minReasonLen int
}

type evaluation struct {
	Actor      models.Actor            `json:"actor"`
	Decision   models.Decision         `json:"decision"`
	Action     string                  `json:"action,omitempty"`
	Result     *models.MigrationRecord `json:"result,omitempty"`
	Refusal    string                  `json:"refusal,omitempty"`
	Interstate bool                    `json:"isInterstate"`
}

func (a *App) newEvaluateCmd() *cobra.Command {
	opts := &evaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate what an actor may do on a migration record",
		Long: `Evaluate reads a migration record as JSON and prints the authorization
decision for the given actor. With --action it also previews the record
that approving or rejecting would produce. Nothing is sent over the network.

Examples:
  portalctl evaluate --record m-1.json --role RO --state Maharashtra \
    --district Nagpur --constituency "Nagpur South"

  portalctl evaluate --record m-1.json --role CEO --state Kerala \
    --action reject --reason "duplicate registration found"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.evaluate(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.recordPath, "record", "r", "", "Path to a migration record JSON file (- for stdin)")
	cmd.Flags().StringVar(&opts.role, "role", "", "Actor role: CEC, EC, CEO, DEO, RO, BLO or Citizen")
	cmd.Flags().StringVar(&opts.actor.ID, "actor-id", "cli", "Actor ID")
	cmd.Flags().StringVar(&opts.actor.State, "state", "", "Actor state")
	cmd.Flags().StringVar(&opts.actor.District, "district", "", "Actor district")
	cmd.Flags().StringVar(&opts.actor.Constituency, "constituency", "", "Actor constituency")
	cmd.Flags().StringVar(&opts.match, "ro-match", config.MatchConstituency, "RO matching granularity: constituency or district")
	cmd.Flags().StringVar(&opts.action, "action", "", "Preview an approve or reject")
	cmd.Flags().StringVar(&opts.reason, "reason", "", "Rejection reason for --action reject")
	cmd.Flags().IntVar(&opts.minReasonLen, "min-reason-length", service.DefaultMinReasonLength, "Minimum rejection reason length")
	_ = cmd.MarkFlagRequired("record")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func (a *App) evaluate(opts *evaluateOptions) error {
	record, err := readRecord(opts.recordPath)
	if err != nil {
		return err
	}
	actor := opts.actor
	actor.Role = models.ParseRole(opts.role)
	if !actor.Role.Valid() {
		return fmt.Errorf("unknown role %q", opts.role)
	}
	policy := service.PolicyOptions{Match: service.ROMatch(strings.ToLower(opts.match))}

	out := evaluation{
		Actor:      actor,
		Decision:   service.EvaluateMigration(actor, record, policy),
		Interstate: record.IsInterstate(),
	}
	if opts.action != "" {
		action := models.WorkflowAction(strings.ToLower(opts.action))
		if action != models.ActionApprove && action != models.ActionReject {
			return fmt.Errorf("action must be approve or reject, got %q", opts.action)
		}
		out.Action = string(action)
		next, err := service.TransitionMigration(record, service.TransitionInput{
			Actor:           actor,
			Action:          action,
			Reason:          opts.reason,
			At:              time.Now(),
			Policy:          policy,
			MinReasonLength: opts.minReasonLen,
		})
		if err != nil {
			out.Refusal = err.Error()
		} else {
			out.Result = &next
		}
	}

	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func readRecord(path string) (models.MigrationRecord, error) {
	var record models.MigrationRecord
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return record, fmt.Errorf("read record: %w", err)
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return record, fmt.Errorf("decode record: %w", err)
	}
	if record.ID == "" {
		return record, fmt.Errorf("record has no id")
	}
	return record, nil
}
