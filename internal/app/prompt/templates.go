package prompt

const outputRules = `--- OUTPUT RULES ---
- Return ONLY a single valid JSON object
- The response MUST start with '{' and end with '}'
- No explanations, reasoning, or commentary
- No markdown, code fences, or formatting
- No assignments or variable names
- Use double quotes only`

const questionsTemplate = `
You are a senior project planner.

Analyze the project idea and output a SMALL SET of foundational questions.
This is structured data generation, not a conversation.

--- PROJECT CONTEXT ---
idea = {{.Idea}}
domain = {{.Domain}}
platform = {{.Platform}}

--- RULES ---
- Generate EXACTLY 5 to 7 questions
- Questions must be general and high-impact
- No implementation or tool-specific questions
- Each question must influence planning decisions
- Each question must be answerable in one step
- Each question must offer 3 to 5 options
- At least 2 questions MUST allow custom input

--- REQUIRED QUESTION AREAS ---
- user experience level
- project intent
- scope ambition
- constraints
- risk or complexity comfort

` + outputRules + `

--- OUTPUT CONTRACT ---
{
  "questions": [
    {
      "id": "q1",
      "question": "Short clear question",
      "options": ["Option A", "Option B", "Option C"],
      "allowCustom": false
    }
  ],
  "remarks": {
    "viability": "High | Medium | Low",
    "complexity": "Low | Medium | High",
    "recommendation": "Proceed | Proceed with caution | Re-scope"
  }
}
`

const planTemplate = `
You are a senior project architect.

Analyze the project inputs and FILL the structured plan template below.
This is structured system design, not creative writing.

--- PROJECT CONTEXT ---
idea = {{.Idea}}
domain = {{.Domain}}
platform = {{.Platform}}
answers = {{.AnswersText}}

` + outputRules + `
- Do not put quotes inside string values
- No emojis or special characters
- No multi-line strings
- Keep strings short, factual, and slot-based
- Prefer arrays over paragraphs
- If unsure, choose the safest conservative option

--- CONTENT RULES ---
- No calendar dates, only relative durations
- No marketing language or speculative claims
- Assume a solo developer unless the answers say otherwise
- Fill every section, even if minimally
- Avoid repeating content across sections

--- SECTION GUIDANCE ---
metadata: constraints, risk, and feasibility.
overview: what is built, who it is for, and why it matters.
architecture_design: high-level system shape only, no technology names.
tech_stack: one entry per layer, explicit and opinionated, realistic alternatives.
infrastructure_and_devops: production-aware but minimal, reliability and security basics.
roadmap: logical execution order, each phase actionable.
tasks: concrete steps with verifiable outcomes.
next_actions: immediately executable steps with no dependencies.
future_backlog: clearly non-essential features deferred for a stated reason.

--- OUTPUT CONTRACT ---
Return every field shown below. No text before or after the JSON.

{
  "metadata": {
    "domain": "{{.Domain}}",
    "platform": "{{.Platform}}",
    "skillLevel": "Beginner | Intermediate | Advanced",
    "estimated_effort": "Low | Medium | High",
    "budget_profile": "Low | Medium | Enterprise",
    "assumptions": ["Assumption"],
    "risk_assessment": [
      {"risk": "Potential blocker", "impact": "High | Medium | Low", "mitigation": "Preventive action"}
    ]
  },
  "overview": {
    "summary_points": ["What is being built", "Who it is for", "Core value"],
    "primary_goal": "Single measurable goal",
    "success_criteria": ["Clear success condition"],
    "user_personas": [
      {"role": "User type", "primary_need": "Primary goal"}
    ]
  },
  "architecture_design": {
    "system_pattern": "Monolith | Microservices | Serverless | Event-Driven",
    "data_flow_description": "High-level data movement",
    "diagram_reference": "Textual description of flow",
    "key_entities": [
      {"name": "Entity name", "attributes": ["attribute"], "relationships": "Relationship description"}
    ]
  },
  "tech_stack": [
    {
      "layer": "frontend | backend | database | ai | auth | deployment | observability",
      "technology": "Technology name",
      "variant": "Exact setup",
      "usage_area": "Where used",
      "decision_factors": {
        "why_recommended": ["Reason"],
        "learning_value": "Low | Medium | High",
        "complexity_level": "Low | Medium | High",
        "scalability_ceiling": "When replacement is needed"
      },
      "core_packages": [
        {"name": "package-name", "purpose": "Purpose", "criticality": "Essential | Optional"}
      ],
      "pros": ["Advantage"],
      "cons": ["Limitation"],
      "alternatives": [
        {"technology": "Alternative", "when_to_choose": "Specific case", "tradeoff": "Primary downside"}
      ]
    }
  ],
  "infrastructure_and_devops": {
    "hosting_provider": "AWS | Vercel | GCP | Railway",
    "ci_cd_pipeline": "GitHub Actions | GitLab CI",
    "monitoring_strategy": "Logging | Tracing | Error Tracking",
    "security_measures": ["Authentication enforcement", "Data encryption", "Access control"]
  },
  "roadmap": [
    {
      "phase_id": "phase-1",
      "title": "Phase title",
      "intent": "Phase purpose",
      "estimated_duration": "Short | Medium | Long",
      "deliverables": ["Deliverable"],
      "milestone_gate": "Condition to proceed"
    }
  ],
  "tasks": [
    {
      "id": "task-1",
      "phase_id": "phase-1",
      "title": "Action",
      "description": "Implementation step",
      "technical_notes": "Key consideration",
      "difficulty": "1-5",
      "dependencies": [],
      "checkable": true,
      "verification_step": "Validation method"
    }
  ],
  "next_actions": ["Immediate executable step"],
  "future_backlog": [
    {"feature": "Deferred feature", "reason_for_delay": "Non-critical"}
  ]
}
`
