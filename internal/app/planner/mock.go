package planner

import "github.com/PabloGalante/planforge/internal/domain"

// MockQuestions is the fixed question set served when the model is
// unavailable or its output is unusable. It passes validate.Questions.
func MockQuestions() domain.QuestionsResponse {
	return domain.QuestionsResponse{
		Questions: []domain.Question{
			{
				ID:          "q1",
				Question:    "What is your experience level?",
				Options:     []string{"Beginner", "Intermediate", "Advanced"},
				AllowCustom: false,
			},
			{
				ID:          "q2",
				Question:    "What is your team size?",
				Options:     []string{"Solo developer", "Small team (2-5)", "Large team (6+)"},
				AllowCustom: false,
			},
			{
				ID:          "q3",
				Question:    "What is your primary goal?",
				Options:     []string{"Learning", "Building a product", "Portfolio project"},
				AllowCustom: true,
			},
			{
				ID:          "q4",
				Question:    "What tools or frameworks are you familiar with?",
				Options:     []string{"React", "Vue", "Angular", "None"},
				AllowCustom: true,
			},
			{
				ID:          "q5",
				Question:    "What are your main constraints?",
				Options:     []string{"Time", "Budget", "Resources", "None"},
				AllowCustom: true,
			},
		},
		Remarks: domain.Remarks{
			Viability:      "High",
			Complexity:     "Medium",
			Recommendation: "Proceed",
		},
	}
}

// MockPlan is the fixed plan served on fallback. It passes validate.Plan
// unchanged.
func MockPlan() domain.PlanResponse {
	return domain.PlanResponse{
		Metadata: domain.PlanMetadata{
			Domain:          "tech",
			Platform:        "web",
			SkillLevel:      "Intermediate",
			EstimatedEffort: "Medium",
			BudgetProfile:   "Low",
			Assumptions:     []string{"User has basic programming knowledge", "Development environment is set up"},
			RiskAssessment: []domain.PlanRisk{
				{Risk: "Technical complexity", Impact: "Medium", Mitigation: "Start with simpler features first"},
			},
		},
		Overview: domain.PlanOverview{
			SummaryPoints: []string{
				"A comprehensive web application project",
				"Built with modern technologies",
				"Suitable for intermediate developers",
			},
			PrimaryGoal:     "Build a functional web application",
			SuccessCriteria: []string{"Deployed application with core features working", "User authentication implemented"},
			UserPersonas: []domain.UserPersona{
				{Role: "End User", PrimaryNeed: "Access core application features"},
			},
		},
		ArchitectureDesign: domain.ArchitectureDesign{
			SystemPattern:       "Monolith",
			DataFlowDescription: "Client-server architecture with REST API",
			DiagramReference:    "Standard web application flow",
			KeyEntities: []domain.ArchitectureEntity{
				{Name: "User", Attributes: []string{"id", "email", "name"}, Relationships: "Has many projects"},
			},
		},
		TechStack: []domain.TechStackItem{
			{
				Layer:      "frontend",
				Technology: "React",
				Variant:    "Vite",
				UsageArea:  "User interface",
				DecisionFactors: domain.TechDecisionFactors{
					WhyRecommended:     []string{"Popular", "Well-documented"},
					LearningValue:      "High",
					ComplexityLevel:    "Medium",
					ScalabilityCeiling: "Suitable for most applications",
				},
				CorePackages: []domain.CorePackage{
					{Name: "react-router", Purpose: "Routing", Criticality: "Essential"},
				},
				Pros: []string{"Large ecosystem", "Strong community"},
				Cons: []string{"Steep learning curve"},
				Alternatives: []domain.TechAlternative{
					{Technology: "Vue.js", WhenToChoose: "Simpler projects", Tradeoff: "Smaller ecosystem"},
				},
			},
		},
		InfrastructureAndDevOps: domain.InfrastructureAndDevOps{
			HostingProvider:    "Vercel",
			CICDPipeline:       "GitHub Actions",
			MonitoringStrategy: "Basic logging",
			SecurityMeasures:   []string{"HTTPS", "Authentication"},
		},
		Roadmap: []domain.RoadmapPhase{
			{
				PhaseID:           "phase-1",
				Title:             "Project Setup",
				Intent:            "Initialize development environment",
				EstimatedDuration: "Short",
				Deliverables:      []string{"Working development setup"},
				MilestoneGate:     "Environment configured",
			},
			{
				PhaseID:           "phase-2",
				Title:             "Core Development",
				Intent:            "Implement main features",
				EstimatedDuration: "Medium",
				Deliverables:      []string{"Functional application"},
				MilestoneGate:     "Core features working",
			},
		},
		Tasks: []domain.Task{
			{
				ID:               "task-1",
				PhaseID:          "phase-1",
				Title:            "Set up development environment",
				Description:      "Install the toolchain and create the project structure",
				TechnicalNotes:   "Use the latest LTS version",
				Difficulty:       "2",
				Dependencies:     []string{},
				Checkable:        true,
				VerificationStep: "Dev server starts successfully",
			},
			{
				ID:               "task-2",
				PhaseID:          "phase-2",
				Title:            "Implement core functionality",
				Description:      "Build the main features",
				TechnicalNotes:   "Follow a component-based architecture",
				Difficulty:       "3",
				Dependencies:     []string{"task-1"},
				Checkable:        true,
				VerificationStep: "Features work as expected",
			},
		},
		NextActions: []string{
			"Set up development environment",
			"Create project repository",
			"Start with basic project structure",
		},
		FutureBacklog: []domain.FutureBacklogItem{
			{Feature: "Advanced analytics", ReasonForDelay: "Not critical for MVP"},
		},
	}
}
