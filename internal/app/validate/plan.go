package validate

import (
	"fmt"

	"github.com/PabloGalante/planforge/internal/domain"
)

// Plan validates a decoded plan response. Only the top-level shape can fail;
// every nested field falls back to its zero value.
func Plan(raw any) (domain.PlanResponse, error) {
	root, ok := asObject(raw)
	if !ok {
		return domain.PlanResponse{}, ErrNotAnObject
	}

	metadata, ok := asObject(root["metadata"])
	if !ok {
		return domain.PlanResponse{}, ErrMissingMetadata
	}
	overview, ok := asObject(root["overview"])
	if !ok {
		return domain.PlanResponse{}, ErrMissingOverview
	}
	architecture, ok := asObject(root["architecture_design"])
	if !ok {
		return domain.PlanResponse{}, ErrMissingArchitecture
	}

	arrays := []struct {
		key string
		err error
	}{
		{"tech_stack", ErrTechStackNotArray},
		{"roadmap", ErrRoadmapNotArray},
		{"tasks", ErrTasksNotArray},
		{"next_actions", ErrNextActionsNotArray},
		{"future_backlog", ErrFutureBacklogNotArray},
	}
	for _, a := range arrays {
		if _, ok := asArray(root[a.key]); !ok {
			return domain.PlanResponse{}, a.err
		}
	}

	return domain.PlanResponse{
		Metadata:                planMetadata(metadata),
		Overview:                planOverview(overview),
		ArchitectureDesign:      architectureDesign(architecture),
		TechStack:               list(root["tech_stack"], techStackItem),
		InfrastructureAndDevOps: infrastructure(object(root["infrastructure_and_devops"])),
		Roadmap:                 list(root["roadmap"], roadmapPhase),
		Tasks:                   list(root["tasks"], task),
		NextActions:             strList(root["next_actions"]),
		FutureBacklog:           list(root["future_backlog"], backlogItem),
	}, nil
}

func planMetadata(m map[string]any) domain.PlanMetadata {
	return domain.PlanMetadata{
		Domain:          str(m["domain"]),
		Platform:        str(m["platform"]),
		SkillLevel:      str(m["skillLevel"]),
		EstimatedEffort: str(m["estimated_effort"]),
		BudgetProfile:   str(m["budget_profile"]),
		Assumptions:     strList(m["assumptions"]),
		RiskAssessment:  list(m["risk_assessment"], risk),
	}
}

func risk(m map[string]any, _ int) domain.PlanRisk {
	return domain.PlanRisk{
		Risk:       str(m["risk"]),
		Impact:     str(m["impact"]),
		Mitigation: str(m["mitigation"]),
	}
}

func planOverview(m map[string]any) domain.PlanOverview {
	return domain.PlanOverview{
		SummaryPoints:   strList(m["summary_points"]),
		PrimaryGoal:     str(m["primary_goal"]),
		SuccessCriteria: strList(m["success_criteria"]),
		UserPersonas:    list(m["user_personas"], persona),
	}
}

func persona(m map[string]any, _ int) domain.UserPersona {
	return domain.UserPersona{
		Role:        str(m["role"]),
		PrimaryNeed: str(m["primary_need"]),
	}
}

func architectureDesign(m map[string]any) domain.ArchitectureDesign {
	return domain.ArchitectureDesign{
		SystemPattern:       str(m["system_pattern"]),
		DataFlowDescription: str(m["data_flow_description"]),
		DiagramReference:    str(m["diagram_reference"]),
		KeyEntities:         list(m["key_entities"], entity),
	}
}

func entity(m map[string]any, _ int) domain.ArchitectureEntity {
	return domain.ArchitectureEntity{
		Name:          str(m["name"]),
		Attributes:    strList(m["attributes"]),
		Relationships: str(m["relationships"]),
	}
}

func techStackItem(m map[string]any, _ int) domain.TechStackItem {
	return domain.TechStackItem{
		Layer:           str(m["layer"]),
		Technology:      str(m["technology"]),
		Variant:         str(m["variant"]),
		UsageArea:       str(m["usage_area"]),
		DecisionFactors: decisionFactors(object(m["decision_factors"])),
		CorePackages:    list(m["core_packages"], corePackage),
		Pros:            strList(m["pros"]),
		Cons:            strList(m["cons"]),
		Alternatives:    list(m["alternatives"], alternative),
	}
}

func decisionFactors(m map[string]any) domain.TechDecisionFactors {
	return domain.TechDecisionFactors{
		WhyRecommended:     strList(m["why_recommended"]),
		LearningValue:      str(m["learning_value"]),
		ComplexityLevel:    str(m["complexity_level"]),
		ScalabilityCeiling: str(m["scalability_ceiling"]),
	}
}

func corePackage(m map[string]any, _ int) domain.CorePackage {
	return domain.CorePackage{
		Name:        str(m["name"]),
		Purpose:     str(m["purpose"]),
		Criticality: str(m["criticality"]),
	}
}

func alternative(m map[string]any, _ int) domain.TechAlternative {
	return domain.TechAlternative{
		Technology:   str(m["technology"]),
		WhenToChoose: str(m["when_to_choose"]),
		Tradeoff:     str(m["tradeoff"]),
	}
}

func infrastructure(m map[string]any) domain.InfrastructureAndDevOps {
	return domain.InfrastructureAndDevOps{
		HostingProvider:    str(m["hosting_provider"]),
		CICDPipeline:       str(m["ci_cd_pipeline"]),
		MonitoringStrategy: str(m["monitoring_strategy"]),
		SecurityMeasures:   strList(m["security_measures"]),
	}
}

func roadmapPhase(m map[string]any, index int) domain.RoadmapPhase {
	id := str(m["phase_id"])
	if id == "" {
		id = fmt.Sprintf("phase-%d", index+1)
	}
	return domain.RoadmapPhase{
		PhaseID:           id,
		Title:             str(m["title"]),
		Intent:            str(m["intent"]),
		EstimatedDuration: str(m["estimated_duration"]),
		Deliverables:      strList(m["deliverables"]),
		MilestoneGate:     str(m["milestone_gate"]),
	}
}

func task(m map[string]any, index int) domain.Task {
	id := str(m["id"])
	if id == "" {
		id = fmt.Sprintf("task-%d", index+1)
	}
	return domain.Task{
		ID:               id,
		PhaseID:          str(m["phase_id"]),
		Title:            str(m["title"]),
		Description:      str(m["description"]),
		TechnicalNotes:   str(m["technical_notes"]),
		Difficulty:       str(m["difficulty"]),
		Dependencies:     strList(m["dependencies"]),
		Checkable:        truthy(m["checkable"]),
		VerificationStep: str(m["verification_step"]),
	}
}

func backlogItem(m map[string]any, _ int) domain.FutureBacklogItem {
	return domain.FutureBacklogItem{
		Feature:        str(m["feature"]),
		ReasonForDelay: str(m["reason_for_delay"]),
	}
}
