package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"github.com/noah-isme/erolls-portal/internal/dto"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
)

// gatewayEnvelope mirrors pkg/response.Envelope with a typed payload.
type gatewayEnvelope[T any] struct {
	Data  T                `json:"data"`
	Error *appErrors.Error `json:"error"`
}

func (a *App) newMigrationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrations",
		Short: "List, approve or reject migrations through the gateway",
	}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List migrations with the actions the token's actor may take",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out gatewayEnvelope[dto.WorkflowListResponse]
			if err := a.call(cmd.Context(), http.MethodGet, "/api/v1/migrations/workflow", map[string]string{"status": status}, nil, &out); err != nil {
				return err
			}
			a.printWorkflow(out.Data)
			return nil
		},
	}
	list.Flags().StringVar(&status, "status", "all", "all, pending, partial, completed or rejected")

	approve := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a migration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out gatewayEnvelope[dto.WorkflowActionResponse]
			if err := a.call(cmd.Context(), http.MethodPost, "/api/v1/migrations/workflow/"+url.PathEscape(args[0])+"/approve", nil, nil, &out); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, out.Data.Message)
			return nil
		},
	}

	var reason string
	reject := &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a migration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out gatewayEnvelope[dto.WorkflowActionResponse]
			body := dto.RejectRequest{Reason: reason}
			if err := a.call(cmd.Context(), http.MethodPost, "/api/v1/migrations/workflow/"+url.PathEscape(args[0])+"/reject", nil, body, &out); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, out.Data.Message)
			return nil
		},
	}
	reject.Flags().StringVar(&reason, "reason", "", "Rejection reason (at least 10 characters)")
	_ = reject.MarkFlagRequired("reason")

	cmd.AddCommand(list, approve, reject)
	return cmd
}

// call sends one request to the gateway and decodes its envelope. Gateway
// errors are returned with their code and message.
func (a *App) call(ctx context.Context, method, path string, query map[string]string, body, result interface{}) error {
	if strings.TrimSpace(a.token) == "" {
		return fmt.Errorf("a bearer token is required (--token or PORTAL_TOKEN)")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	req := resty.New().
		SetBaseURL(strings.TrimRight(a.gatewayURL, "/")).
		SetTimeout(30 * time.Second).
		R().
		SetContext(ctx).
		SetAuthToken(a.token).
		SetHeader("Accept", "application/json")
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("gateway unreachable: %w", err)
	}
	if resp.IsError() {
		var failed gatewayEnvelope[json.RawMessage]
		if err := json.Unmarshal(resp.Body(), &failed); err == nil && failed.Error != nil {
			return fmt.Errorf("%s (%d): %s", failed.Error.Code, resp.StatusCode(), failed.Error.Message)
		}
		return fmt.Errorf("gateway returned %s", resp.Status())
	}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return fmt.Errorf("decode gateway reply: %w", err)
	}
	return nil
}

func (a *App) printWorkflow(list dto.WorkflowListResponse) {
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tAPPLICANT\tFROM\tTO\tSTATUS\tACTIONS")
	for _, item := range list.Migrations {
		m := item.Migration
		fmt.Fprintf(tw, "%s\t%s\t%s, %s\t%s, %s\t%s\t%s\n",
			m.ID, m.ApplicantName,
			m.OldConstituency, m.OldState,
			m.NewConstituency, m.NewState,
			item.StatusLabel, actionSummary(item))
	}
	_ = tw.Flush()
	c := list.StatusCounts
	fmt.Fprintf(a.stdout, "\nall %d  pending %d  partial %d  completed %d  rejected %d\n",
		c.All, c.Pending, c.Partial, c.Completed, c.Rejected)
}

func actionSummary(item dto.WorkflowItem) string {
	var parts []string
	if item.Actions.CanApprove {
		label := item.Actions.ApproveLabel
		if label == "" {
			label = "approve"
		}
		parts = append(parts, label)
	}
	if item.Actions.CanReject {
		parts = append(parts, "reject")
	}
	if len(parts) == 0 {
		return "view only"
	}
	return strings.Join(parts, ", ")
}
