package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "planforge",
	Short: "PlanForge - turn a project idea into an actionable plan",
	Long: `PlanForge asks a few clarifying questions about a project idea and then
generates a structured plan: architecture, tech stack, roadmap and tasks.

Commands:
  serve       Run the HTTP API
  draft       Generate questions and a plan for one idea and print them
  version     Show version info

Configuration comes from the environment (see .env.example) and an
optional YAML file named by PLANFORGE_CONFIG.`,
	SilenceUsage: true,
}
