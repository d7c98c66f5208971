package classify

import "strings"

// SquadType tags the kind of squad a query is matched to
type SquadType string

const (
	SquadAdventurePlanning SquadType = "adventure_planning"
	SquadFitnessWellness   SquadType = "fitness_wellness"
	SquadBusinessLaunch    SquadType = "business_launch"
	SquadContentCreation   SquadType = "content_creation"
	SquadLearningMastery   SquadType = "learning_mastery"
	SquadProblemSolving    SquadType = "problem_solving"
)

// DefaultSquadType is used when the model names no known type
const DefaultSquadType = SquadProblemSolving

// Template is the pre-authored squad offered for a squad type
type Template struct {
	Type         SquadType `json:"type"`
	Name         string    `json:"name"`
	Emoji        string    `json:"emoji"`
	Description  string    `json:"description"`
	Roles        []string  `json:"roles"`
	TimeEstimate string    `json:"time_estimate"`
	BaseReward   int       `json:"base_reward"`
}

// squadTypes fixes the listing order
var squadTypes = []SquadType{
	SquadAdventurePlanning,
	SquadFitnessWellness,
	SquadBusinessLaunch,
	SquadContentCreation,
	SquadLearningMastery,
	SquadProblemSolving,
}

var templates = map[SquadType]Template{
	SquadAdventurePlanning: {
		Type:         SquadAdventurePlanning,
		Name:         "Adventure Squad",
		Emoji:        "🏔️",
		Description:  "Plan trips, hikes and getaways with people who handle the logistics while you enjoy the ride.",
		Roles:        []string{"Trip Lead", "Route Planner", "Budget Keeper", "Memory Maker"},
		TimeEstimate: "1-2 weeks",
		BaseReward:   40,
	},
	SquadFitnessWellness: {
		Type:         SquadFitnessWellness,
		Name:         "Wellness Warriors",
		Emoji:        "💪",
		Description:  "Stay accountable to your health goals with a coach, a nutrition buddy and daily check-ins.",
		Roles:        []string{"Coach", "Nutrition Buddy", "Accountability Partner"},
		TimeEstimate: "30 days",
		BaseReward:   30,
	},
	SquadBusinessLaunch: {
		Type:         SquadBusinessLaunch,
		Name:         "Launch Crew",
		Emoji:        "🚀",
		Description:  "Turn an idea into a business with a strategist, a builder and a marketer on your side.",
		Roles:        []string{"Strategist", "Builder", "Marketer", "Finance Lead"},
		TimeEstimate: "4-8 weeks",
		BaseReward:   75,
	},
	SquadContentCreation: {
		Type:         SquadContentCreation,
		Name:         "Creator Collective",
		Emoji:        "🎬",
		Description:  "Write, shoot and publish together with an editor and a promoter keeping the pipeline moving.",
		Roles:        []string{"Creator", "Editor", "Promoter"},
		TimeEstimate: "2-3 weeks",
		BaseReward:   50,
	},
	SquadLearningMastery: {
		Type:         SquadLearningMastery,
		Name:         "Study Circle",
		Emoji:        "📚",
		Description:  "Master a new skill with a mentor, a study partner and a shared practice plan.",
		Roles:        []string{"Mentor", "Study Partner", "Quiz Master"},
		TimeEstimate: "3-6 weeks",
		BaseReward:   35,
	},
	SquadProblemSolving: {
		Type:         SquadProblemSolving,
		Name:         "Solution Squad",
		Emoji:        "🧩",
		Description:  "Break a tough problem down with a researcher, an analyst and someone to make the call.",
		Roles:        []string{"Researcher", "Analyst", "Decision Maker"},
		TimeEstimate: "1 week",
		BaseReward:   25,
	},
}

// ParseSquadType normalizes a model-supplied tag, falling back to DefaultSquadType
func ParseSquadType(raw string) SquadType {
	t := SquadType(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := templates[t]; ok {
		return t
	}
	return DefaultSquadType
}

// TemplateFor returns the template of t, or of DefaultSquadType when t is unknown
func TemplateFor(t SquadType) Template {
	tmpl, ok := templates[t]
	if !ok {
		tmpl = templates[DefaultSquadType]
	}
	tmpl.Roles = append([]string(nil), tmpl.Roles...)
	return tmpl
}

// Templates lists every template in a stable order
func Templates() []Template {
	out := make([]Template, len(squadTypes))
	for i, t := range squadTypes {
		out[i] = TemplateFor(t)
	}
	return out
}
