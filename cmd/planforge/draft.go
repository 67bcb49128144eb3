package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/PabloGalante/planforge/internal/app/planner"
	"github.com/PabloGalante/planforge/internal/config"
	"github.com/PabloGalante/planforge/internal/domain"
)

var (
	draftDomainFlag   string
	draftPlatformFlag string
	draftUserFlag     string
)

var draftCmd = &cobra.Command{
	Use:   "draft [idea]",
	Short: "Generate questions and a plan for one idea",
	Long: `Run the full questions-then-plan flow in-process and print the result
as JSON. Each question is answered with its first option.

Useful to check prompts and credentials without the HTTP API.

Examples:
  planforge draft "a habit tracker for remote teams"
  planforge draft "thesis on urban heat islands" -d Academic -p custom`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDraft,
}

func init() {
	draftCmd.Flags().StringVarP(&draftDomainFlag, "domain", "d", string(domain.DomainTechProduct), "Project domain (Tech Product, Non-Tech, Academic, Creative)")
	draftCmd.Flags().StringVarP(&draftPlatformFlag, "platform", "p", string(domain.PlatformWeb), "Platform (web, mobile, desktop, api, custom)")
	draftCmd.Flags().StringVar(&draftUserFlag, "user", "cli", "User id recorded on the project")
	rootCmd.AddCommand(draftCmd)
}

type draftResult struct {
	ProjectID       domain.ProjectID         `json:"projectId"`
	QuestionsSource planner.Source           `json:"questionsSource"`
	Questions       domain.QuestionsResponse `json:"questions"`
	Answers         map[string]string        `json:"answers"`
	PlanSource      planner.Source           `json:"planSource"`
	Plan            domain.PlanResponse      `json:"plan"`
}

func runDraft(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	// Logs go to stderr so stdout stays valid JSON.
	a, err := newApp(ctx, cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.close()

	req := domain.QuestionRequest{
		Idea:     strings.Join(args, " "),
		Domain:   domain.ProjectDomain(draftDomainFlag),
		Platform: domain.Platform(draftPlatformFlag),
	}
	if err := req.Validate(); err != nil {
		return err
	}

	projectID := domain.ProjectID(uuid.NewString())
	userID := domain.UserID(draftUserFlag)

	qs := a.planner.GenerateQuestions(ctx, planner.QuestionsInput{
		Request:   req,
		ProjectID: projectID,
		UserID:    userID,
	})

	answers := firstOptions(qs.Response.Questions)
	plan := a.planner.GeneratePlan(ctx, planner.PlanInput{
		Request: domain.PlanRequest{
			ProjectID: projectID,
			Idea:      req.Idea,
			Domain:    req.Domain,
			Platform:  req.Platform,
			Answers:   answers,
		},
		UserID: userID,
	})

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(draftResult{
		ProjectID:       projectID,
		QuestionsSource: qs.Source,
		Questions:       qs.Response,
		Answers:         answers,
		PlanSource:      plan.Source,
		Plan:            plan.Response,
	}); err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return nil
}

// firstOptions answers every question with its first option, or a
// placeholder for a question without options.
func firstOptions(questions []domain.Question) map[string]string {
	answers := make(map[string]string, len(questions))
	for _, q := range questions {
		if len(q.Options) > 0 {
			answers[q.ID] = q.Options[0]
			continue
		}
		answers[q.ID] = "No preference"
	}
	return answers
}
