package domain

import (
	"fmt"
	"strings"
)

// QuestionRequest is the input to question generation.
type QuestionRequest struct {
	Idea     string        `json:"idea"`
	Domain   ProjectDomain `json:"domain"`
	Platform Platform      `json:"platform"`
}

// Validate runs the pre-flight checks done before the generator is invoked.
func (r QuestionRequest) Validate() error {
	if strings.TrimSpace(r.Idea) == "" {
		return fmt.Errorf("%w: idea is required", ErrInvalidRequest)
	}
	if !r.Domain.Valid() {
		return fmt.Errorf("%w: unknown domain %q", ErrInvalidRequest, r.Domain)
	}
	if !r.Platform.Valid() {
		return fmt.Errorf("%w: unknown platform %q", ErrInvalidRequest, r.Platform)
	}
	return nil
}

type Question struct {
	ID          string   `json:"id" firestore:"id"`
	Question    string   `json:"question" firestore:"question"`
	Options     []string `json:"options" firestore:"options"`
	AllowCustom bool     `json:"allowCustom" firestore:"allowCustom"`
}

// Remarks is the model's quick read on the idea.
type Remarks struct {
	Viability      string `json:"viability" firestore:"viability"`
	Complexity     string `json:"complexity" firestore:"complexity"`
	Recommendation string `json:"recommendation" firestore:"recommendation"`
}

type QuestionsResponse struct {
	Questions []Question `json:"questions" firestore:"questions"`
	Remarks   Remarks    `json:"remarks" firestore:"remarks"`
}

// PlanRequest carries the answers keyed by question id.
type PlanRequest struct {
	ProjectID ProjectID         `json:"projectId"`
	Idea      string            `json:"idea"`
	Domain    ProjectDomain     `json:"domain"`
	Platform  Platform          `json:"platform"`
	Answers   map[string]string `json:"answers"`
}

func (r PlanRequest) Validate() error {
	if strings.TrimSpace(string(r.ProjectID)) == "" {
		return fmt.Errorf("%w: projectId is required", ErrInvalidRequest)
	}
	if len(r.Answers) == 0 {
		return fmt.Errorf("%w: answers are required", ErrInvalidRequest)
	}
	return nil
}

// ─────────────────────────────────────────────
// Plan
// ─────────────────────────────────────────────

type PlanRisk struct {
	Risk       string `json:"risk" firestore:"risk"`
	Impact     string `json:"impact" firestore:"impact"`
	Mitigation string `json:"mitigation" firestore:"mitigation"`
}

type PlanMetadata struct {
	Domain          string     `json:"domain" firestore:"domain"`
	Platform        string     `json:"platform" firestore:"platform"`
	SkillLevel      string     `json:"skillLevel" firestore:"skillLevel"`
	EstimatedEffort string     `json:"estimated_effort" firestore:"estimated_effort"`
	BudgetProfile   string     `json:"budget_profile" firestore:"budget_profile"`
	Assumptions     []string   `json:"assumptions" firestore:"assumptions"`
	RiskAssessment  []PlanRisk `json:"risk_assessment" firestore:"risk_assessment"`
}

type UserPersona struct {
	Role        string `json:"role" firestore:"role"`
	PrimaryNeed string `json:"primary_need" firestore:"primary_need"`
}

type PlanOverview struct {
	SummaryPoints   []string      `json:"summary_points" firestore:"summary_points"`
	PrimaryGoal     string        `json:"primary_goal" firestore:"primary_goal"`
	SuccessCriteria []string      `json:"success_criteria" firestore:"success_criteria"`
	UserPersonas    []UserPersona `json:"user_personas" firestore:"user_personas"`
}

type ArchitectureEntity struct {
	Name          string   `json:"name" firestore:"name"`
	Attributes    []string `json:"attributes" firestore:"attributes"`
	Relationships string   `json:"relationships" firestore:"relationships"`
}

type ArchitectureDesign struct {
	SystemPattern       string               `json:"system_pattern" firestore:"system_pattern"`
	DataFlowDescription string               `json:"data_flow_description" firestore:"data_flow_description"`
	DiagramReference    string               `json:"diagram_reference" firestore:"diagram_reference"`
	KeyEntities         []ArchitectureEntity `json:"key_entities" firestore:"key_entities"`
}

type TechDecisionFactors struct {
	WhyRecommended     []string `json:"why_recommended" firestore:"why_recommended"`
	LearningValue      string   `json:"learning_value" firestore:"learning_value"`
	ComplexityLevel    string   `json:"complexity_level" firestore:"complexity_level"`
	ScalabilityCeiling string   `json:"scalability_ceiling" firestore:"scalability_ceiling"`
}

type CorePackage struct {
	Name        string `json:"name" firestore:"name"`
	Purpose     string `json:"purpose" firestore:"purpose"`
	Criticality string `json:"criticality" firestore:"criticality"` // "Essential" or "Optional"
}

type TechAlternative struct {
	Technology   string `json:"technology" firestore:"technology"`
	WhenToChoose string `json:"when_to_choose" firestore:"when_to_choose"`
	Tradeoff     string `json:"tradeoff" firestore:"tradeoff"`
}

type TechStackItem struct {
	Layer           string              `json:"layer" firestore:"layer"`
	Technology      string              `json:"technology" firestore:"technology"`
	Variant         string              `json:"variant" firestore:"variant"`
	UsageArea       string              `json:"usage_area" firestore:"usage_area"`
	DecisionFactors TechDecisionFactors `json:"decision_factors" firestore:"decision_factors"`
	CorePackages    []CorePackage       `json:"core_packages" firestore:"core_packages"`
	Pros            []string            `json:"pros" firestore:"pros"`
	Cons            []string            `json:"cons" firestore:"cons"`
	Alternatives    []TechAlternative   `json:"alternatives" firestore:"alternatives"`
}

type InfrastructureAndDevOps struct {
	HostingProvider    string   `json:"hosting_provider" firestore:"hosting_provider"`
	CICDPipeline       string   `json:"ci_cd_pipeline" firestore:"ci_cd_pipeline"`
	MonitoringStrategy string   `json:"monitoring_strategy" firestore:"monitoring_strategy"`
	SecurityMeasures   []string `json:"security_measures" firestore:"security_measures"`
}

type RoadmapPhase struct {
	PhaseID           string   `json:"phase_id" firestore:"phase_id"`
	Title             string   `json:"title" firestore:"title"`
	Intent            string   `json:"intent" firestore:"intent"`
	EstimatedDuration string   `json:"estimated_duration" firestore:"estimated_duration"`
	Deliverables      []string `json:"deliverables" firestore:"deliverables"`
	MilestoneGate     string   `json:"milestone_gate" firestore:"milestone_gate"`
}

type Task struct {
	ID               string   `json:"id" firestore:"id"`
	PhaseID          string   `json:"phase_id" firestore:"phase_id"`
	Title            string   `json:"title" firestore:"title"`
	Description      string   `json:"description" firestore:"description"`
	TechnicalNotes   string   `json:"technical_notes" firestore:"technical_notes"`
	Difficulty       string   `json:"difficulty" firestore:"difficulty"`
	Dependencies     []string `json:"dependencies" firestore:"dependencies"`
	Checkable        bool     `json:"checkable" firestore:"checkable"`
	VerificationStep string   `json:"verification_step" firestore:"verification_step"`
}

type FutureBacklogItem struct {
	Feature        string `json:"feature" firestore:"feature"`
	ReasonForDelay string `json:"reason_for_delay" firestore:"reason_for_delay"`
}

// PlanResponse is the full structured plan rendered by the UI.
// Every slice is non-nil so it encodes as [] rather than null.
type PlanResponse struct {
	Metadata                PlanMetadata            `json:"metadata" firestore:"metadata"`
	Overview                PlanOverview            `json:"overview" firestore:"overview"`
	ArchitectureDesign      ArchitectureDesign      `json:"architecture_design" firestore:"architecture_design"`
	TechStack               []TechStackItem         `json:"tech_stack" firestore:"tech_stack"`
	InfrastructureAndDevOps InfrastructureAndDevOps `json:"infrastructure_and_devops" firestore:"infrastructure_and_devops"`
	Roadmap                 []RoadmapPhase          `json:"roadmap" firestore:"roadmap"`
	Tasks                   []Task                  `json:"tasks" firestore:"tasks"`
	NextActions             []string                `json:"next_actions" firestore:"next_actions"`
	FutureBacklog           []FutureBacklogItem     `json:"future_backlog" firestore:"future_backlog"`
}
